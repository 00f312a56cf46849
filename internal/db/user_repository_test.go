package db

import (
	"testing"
	"time"

	"github.com/elkmoss/gritbot/internal/models"
)

func TestFindOrCreateByExternalIDIsIdempotent(t *testing.T) {
	repos := NewRepositories(openTestDatabase(t))

	first, err := repos.Users.FindOrCreateByExternalID("42")
	if err != nil {
		t.Fatalf("first lookup: %v", err)
	}
	second, err := repos.Users.FindOrCreateByExternalID("42")
	if err != nil {
		t.Fatalf("second lookup: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected the same user, got ids %d and %d", first.ID, second.ID)
	}
}

func TestAddPointsAccumulates(t *testing.T) {
	repos := NewRepositories(openTestDatabase(t))
	user, _ := repos.Users.FindOrCreateByExternalID("42")

	if err := repos.Users.AddPoints(user.ID, 10); err != nil {
		t.Fatalf("add points: %v", err)
	}
	if err := repos.Users.AddPoints(user.ID, 10); err != nil {
		t.Fatalf("add points: %v", err)
	}

	reloaded, err := repos.Users.FindByID(user.ID)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if reloaded.Points != 20 {
		t.Fatalf("expected 20 points, got %d", reloaded.Points)
	}
}

func TestDeleteAccountRemovesTasksAndBadges(t *testing.T) {
	database := openTestDatabase(t)
	repos := NewRepositories(database)
	user, tasks := seedUserWithTasks(t, repos)

	badge := models.Badge{UserID: user.ID, Name: "3-day-streak", AwardedAt: time.Now().UTC()}
	if err := repos.Badges.Create(&badge); err != nil {
		t.Fatalf("create badge: %v", err)
	}

	if err := repos.Users.DeleteAccountAndRelatedData(user.ID); err != nil {
		t.Fatalf("delete account: %v", err)
	}

	var remainingTasks, remainingBadges int64
	if err := database.Model(&models.Task{}).Where("user_id = ?", user.ID).Count(&remainingTasks).Error; err != nil {
		t.Fatalf("count tasks: %v", err)
	}
	if err := database.Model(&models.Badge{}).Where("user_id = ?", user.ID).Count(&remainingBadges).Error; err != nil {
		t.Fatalf("count badges: %v", err)
	}
	if remainingTasks != 0 || remainingBadges != 0 {
		t.Fatalf("expected no orphans, got %d tasks and %d badges for %d seeded tasks", remainingTasks, remainingBadges, len(tasks))
	}
}

func TestBadgeUniquenessPerUser(t *testing.T) {
	repos := NewRepositories(openTestDatabase(t))
	user, _ := repos.Users.FindOrCreateByExternalID("42")

	first := models.Badge{UserID: user.ID, Name: "3-day-streak", AwardedAt: time.Now().UTC()}
	if err := repos.Badges.Create(&first); err != nil {
		t.Fatalf("create badge: %v", err)
	}
	duplicate := models.Badge{UserID: user.ID, Name: "3-day-streak", AwardedAt: time.Now().UTC()}
	if err := repos.Badges.Create(&duplicate); err == nil {
		t.Fatal("expected the unique constraint to reject the duplicate badge")
	}
}
