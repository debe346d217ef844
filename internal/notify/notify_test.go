package notify_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/spacematch/internal/domain"
	"github.com/oggyb/spacematch/internal/notify"
	"github.com/oggyb/spacematch/internal/testinfra"
)

func TestPublisherDeliversMatchEvents(t *testing.T) {
	ctx := testinfra.Ctx(t)
	ch := notify.NewGoChannel(testinfra.Logger())
	t.Cleanup(func() { ch.Close() })

	created, err := ch.Subscribe(ctx, notify.TopicMatchCreated)
	require.NoError(t, err)
	accepted, err := ch.Subscribe(ctx, notify.TopicMatchAccepted)
	require.NoError(t, err)

	p := notify.NewPublisher(ch, testinfra.Logger())
	m := domain.Match{
		ID: "m1", SeekerID: "s1", ProviderID: "p1", ItemID: "i1",
		Status: domain.MatchPending, Score: domain.Score{Total: 80},
	}

	p.MatchCreated(ctx, m)
	ev := receive(t, created)
	assert.Equal(t, "m1", ev.MatchID)
	assert.Equal(t, "pending", ev.Status)
	assert.Equal(t, 80, ev.Score)

	m.Status = domain.MatchAccepted
	p.MatchAccepted(ctx, m)
	ev = receive(t, accepted)
	assert.Equal(t, "accepted", ev.Status)
}

type failingPublisher struct{}

func (failingPublisher) Publish(string, ...*message.Message) error { return errors.New("broker down") }
func (failingPublisher) Close() error                              { return nil }

func TestPublisherSwallowsErrors(t *testing.T) {
	p := notify.NewPublisher(failingPublisher{}, testinfra.Logger())
	assert.NotPanics(t, func() {
		p.MatchRejected(context.Background(), domain.Match{ID: "m1"})
	})
}

func receive(t *testing.T, msgs <-chan *message.Message) notify.MatchEvent {
	t.Helper()
	select {
	case msg := <-msgs:
		msg.Ack()
		var ev notify.MatchEvent
		require.NoError(t, json.Unmarshal(msg.Payload, &ev))
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("no event received")
	}
	return notify.MatchEvent{}
}
