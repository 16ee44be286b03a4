package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chatlabs/chat-api/internal/domain"
	applog "github.com/chatlabs/chat-api/internal/logger"
	"github.com/chatlabs/chat-api/internal/store"
	"github.com/chatlabs/chat-api/internal/store/sqlstore"
	"github.com/chatlabs/chat-api/internal/validation"
)

func setupTestServices(t *testing.T) (*MessageService, *TagService, *sqlstore.Store) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	logger := applog.Discard().Logger

	testStore, err := sqlstore.OpenSQLite(dbPath, logger)
	require.NoError(t, err)
	t.Cleanup(func() { testStore.Close() })

	v := validation.New()
	return NewMessageService(testStore, v, logger), NewTagService(testStore, v, logger), testStore
}

// untouchableStore fails the test on any storage call.
// The embedded nil interface panics if a method is not overridden.
type untouchableStore struct {
	store.Store
	t *testing.T
}

func newUntouchableServices(t *testing.T) (*MessageService, *TagService) {
	t.Helper()
	s := untouchableStore{t: t}
	logger := applog.Discard().Logger
	v := validation.New()
	return NewMessageService(s, v, logger), NewTagService(s, v, logger)
}

func (u untouchableStore) fail(op string) {
	u.t.Helper()
	u.t.Fatalf("unexpected storage call: %s", op)
}

func (u untouchableStore) CreateMessage(context.Context, *domain.Message, []domain.TagRef) error {
	u.fail("CreateMessage")
	return nil
}

func (u untouchableStore) UpdateMessage(context.Context, string, string, []domain.TagRef) (*domain.Message, error) {
	u.fail("UpdateMessage")
	return nil, nil
}

func (u untouchableStore) CreateTagSuggestion(context.Context, *domain.TagSuggestion) (*domain.Tag, error) {
	u.fail("CreateTagSuggestion")
	return nil, nil
}

func (u untouchableStore) UpdateTag(context.Context, string, store.TagUpdate) (*domain.Tag, error) {
	u.fail("UpdateTag")
	return nil, nil
}
