package services

import (
	"context"
	"log"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/elkmoss/gritbot/internal/db"
)

const motivationHourUTC = 9

var motivationalQuotes = []string{
	"🌟 Believe you can and you're halfway there. – Theodore Roosevelt",
	"🔥 Don't watch the clock; do what it does. Keep going. – Sam Levenson",
	"🚀 The future depends on what you do today. – Mahatma Gandhi",
	"💡 The only way to do great work is to love what you do. – Steve Jobs",
	"🌱 Start where you are. Use what you have. Do what you can. – Arthur Ashe",
}

// MotivationService broadcasts one motivational quote per user every day at
// 09:00 UTC. A delivery failure for one user never blocks the rest.
type MotivationService struct {
	store     *db.Store
	messenger Messenger
	now       func() time.Time
	started   atomic.Bool
}

func NewMotivationService(store *db.Store, messenger Messenger) *MotivationService {
	return &MotivationService{store: store, messenger: messenger, now: time.Now}
}

func (service *MotivationService) Start(ctx context.Context) {
	if !service.started.CompareAndSwap(false, true) {
		return
	}

	go func() {
		now := service.now().UTC()
		timer := time.NewTimer(NextMotivationAnchor(now).Sub(now))
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
				service.broadcast(ctx)
				timer.Reset(24 * time.Hour)
			}
		}
	}()
}

// NextMotivationAnchor returns the next 09:00 UTC occurrence: today's if it
// is still ahead, otherwise tomorrow's.
func NextMotivationAnchor(now time.Time) time.Time {
	now = now.UTC()
	anchor := time.Date(now.Year(), now.Month(), now.Day(), motivationHourUTC, 0, 0, 0, time.UTC)
	if !now.Before(anchor) {
		anchor = anchor.AddDate(0, 0, 1)
	}
	return anchor
}

func (service *MotivationService) broadcast(ctx context.Context) {
	users, err := service.store.Repositories().Users.ListAll()
	if err != nil {
		log.Printf("motivation: fetch users failed: %v", err)
		return
	}

	for _, user := range users {
		if ctx.Err() != nil {
			return
		}
		quote := motivationalQuotes[rand.Intn(len(motivationalQuotes))]
		if err := service.messenger.SendDirectMessage(ctx, user.ExternalID, "💪 Daily motivation: "+quote); err != nil {
			log.Printf("motivation: delivery to user %d failed: %v", user.ID, err)
		}
	}
}
