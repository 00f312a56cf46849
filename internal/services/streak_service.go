package services

import (
	"time"

	"github.com/elkmoss/gritbot/internal/db"
	"github.com/elkmoss/gritbot/internal/models"
)

type StreakBadge struct {
	Days int
	Name string
}

// StreakBadges is the badge catalog, ascending by threshold. Awards are
// evaluated in this order so a streak that jumps past several thresholds
// reports the new badges lowest first.
var StreakBadges = []StreakBadge{
	{Days: 3, Name: "3-day-streak"},
	{Days: 7, Name: "7-day-streak"},
	{Days: 14, Name: "14-day-streak"},
}

// UpdateStreakAndBadges rolls the user's completion streak forward for a
// completion happening at now and awards any badge thresholds the new streak
// crosses. Must run inside the completing operation's transaction.
func UpdateStreakAndBadges(repos *db.Repositories, user *models.User, now time.Time) ([]string, error) {
	today := utcDate(now)

	if user.LastCompleted == nil {
		user.Streak = 1
	} else {
		daysDiff := daysBetween(utcDate(*user.LastCompleted), today)
		switch {
		case daysDiff == 1:
			user.Streak++
		case daysDiff > 1:
			user.Streak = 1
		default:
			// Same-day repeat completion: streak stays as it is.
		}
	}

	completedAt := now.UTC()
	user.LastCompleted = &completedAt
	if err := repos.Users.UpdateStreak(user.ID, user.Streak, completedAt); err != nil {
		return nil, err
	}

	awarded := make([]string, 0)
	for _, badge := range StreakBadges {
		if user.Streak < badge.Days {
			continue
		}
		held, err := repos.Badges.ExistsForUser(user.ID, badge.Name)
		if err != nil {
			return nil, err
		}
		if held {
			continue
		}
		if err := repos.Badges.Create(&models.Badge{
			UserID:    user.ID,
			Name:      badge.Name,
			AwardedAt: completedAt,
		}); err != nil {
			return nil, err
		}
		awarded = append(awarded, badge.Name)
	}
	return awarded, nil
}

func utcDate(value time.Time) time.Time {
	year, month, day := value.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from time.Time, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
