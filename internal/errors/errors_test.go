package errors_test

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"gorm.io/gorm"

	svcErr "github.com/oggyb/spacematch/internal/errors"
)

func TestSentinelsMatchByKind(t *testing.T) {
	err := fmt.Errorf("record: %w", svcErr.Conflict("already swiped"))

	assert.True(t, stderrors.Is(err, svcErr.ErrConflict))
	assert.False(t, stderrors.Is(err, svcErr.ErrNotFound))
	assert.Equal(t, svcErr.KindConflict, svcErr.KindOf(err))
	assert.Equal(t, svcErr.KindInternal, svcErr.KindOf(stderrors.New("boom")))
}

func TestMapCodes(t *testing.T) {
	cases := []struct {
		err  error
		code codes.Code
	}{
		{svcErr.NotFound("match %s not found", "m1"), codes.NotFound},
		{svcErr.Conflict("already swiped"), codes.AlreadyExists},
		{svcErr.Forbidden("not your listing"), codes.PermissionDenied},
		{svcErr.InvalidState("match is accepted"), codes.FailedPrecondition},
		{svcErr.Validation("budget max < min"), codes.InvalidArgument},
		{gorm.ErrRecordNotFound, codes.NotFound},
		{context.DeadlineExceeded, codes.DeadlineExceeded},
		{stderrors.New("boom"), codes.Internal},
		{svcErr.InvalidArgument("bad id"), codes.InvalidArgument},
	}
	for _, tc := range cases {
		st, ok := status.FromError(svcErr.Map(tc.err))
		if assert.True(t, ok) {
			assert.Equal(t, tc.code, st.Code(), "err=%v", tc.err)
		}
	}
	assert.NoError(t, svcErr.Map(nil))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := stderrors.New("dial tcp: refused")
	err := svcErr.Wrap(svcErr.KindNotFound, cause, "load seeker")

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, svcErr.ErrNotFound)
	assert.Equal(t, "load seeker: dial tcp: refused", err.Error())
}
