// Package testinfra builds isolated SQLite and Redis backends for tests.
package testinfra

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/oggyb/spacematch/internal/db"
	"github.com/oggyb/spacematch/internal/domain"
)

// SQLite opens a migrated in-memory database private to t.
func SQLite(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", strings.ReplaceAll(t.Name(), "/", "_"))
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		NowFunc:                func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 logger.Discard,
	})
	require.NoError(t, err)

	sqlDB, err := database.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.Migrate(database))
	return database
}

// Redis starts a miniredis instance stopped at test cleanup.
func Redis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	return mr
}

// Logger discards output.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Fixtures inserts domain records directly through gorm.
type Fixtures struct {
	t  *testing.T
	db *gorm.DB
}

func NewFixtures(t *testing.T, database *gorm.DB) *Fixtures {
	return &Fixtures{t: t, db: database}
}

func (f *Fixtures) User(u domain.User) domain.User {
	f.t.Helper()
	row := db.UserFromDomain(u)
	require.NoError(f.t, f.db.Create(&row).Error)
	return row.ToDomain()
}

func (f *Fixtures) Item(it domain.Item) domain.Item {
	f.t.Helper()
	row := db.ItemFromDomain(it)
	require.NoError(f.t, f.db.Create(&row).Error)
	return row.ToDomain()
}

func (f *Fixtures) Swipe(userID, itemID string, typ domain.InteractionType) {
	f.t.Helper()
	row := db.Interaction{UserID: userID, ItemID: itemID, Type: string(typ), CreatedAt: time.Now().UTC()}
	require.NoError(f.t, f.db.Create(&row).Error)
}

func (f *Fixtures) Match(m domain.Match) domain.Match {
	f.t.Helper()
	row := db.MatchFromDomain(m)
	require.NoError(f.t, f.db.Create(&row).Error)
	return row.ToDomain()
}

// Ctx returns a context cancelled at test cleanup.
func Ctx(t *testing.T) context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
