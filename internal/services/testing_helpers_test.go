package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/elkmoss/gritbot/internal/db"
	"github.com/elkmoss/gritbot/internal/models"
)

func newTestStore(t *testing.T) *db.Store {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "gritbot_test.db"))
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	return db.NewStore(database)
}

func createTestUser(t *testing.T, store *db.Store, externalID string) models.User {
	t.Helper()

	user, err := store.Repositories().Users.FindOrCreateByExternalID(externalID)
	if err != nil {
		t.Fatalf("create test user: %v", err)
	}
	return user
}

func setLastCompleted(t *testing.T, store *db.Store, user *models.User, streak int, lastCompleted time.Time) {
	t.Helper()

	if err := store.Repositories().Users.UpdateStreak(user.ID, streak, lastCompleted); err != nil {
		t.Fatalf("seed streak state: %v", err)
	}
	user.Streak = streak
	lastCompletedUTC := lastCompleted.UTC()
	user.LastCompleted = &lastCompletedUTC
}

type sentMessage struct {
	ExternalID string
	Text       string
}

// fakeMessenger records deliveries; errs maps an external id to the error
// its sends should fail with.
type fakeMessenger struct {
	sent []sentMessage
	errs map[string]error
}

func (messenger *fakeMessenger) SendDirectMessage(_ context.Context, externalID string, text string) error {
	messenger.sent = append(messenger.sent, sentMessage{ExternalID: externalID, Text: text})
	if messenger.errs != nil {
		return messenger.errs[externalID]
	}
	return nil
}
