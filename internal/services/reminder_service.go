package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/elkmoss/gritbot/internal/db"
	"github.com/elkmoss/gritbot/internal/models"
)

// Messenger delivers a direct message to a user identified by their
// chat-platform id. Implementations return ErrRecipientBlocked when the
// platform reports the recipient refuses direct messages.
type Messenger interface {
	SendDirectMessage(ctx context.Context, externalID string, text string) error
}

const (
	defaultReminderInterval = time.Minute
	// maxRemindAttempts bounds retries for failed deliveries; after that the
	// task is marked notified and the reminder is dropped.
	maxRemindAttempts = 5
)

// ReminderService sweeps for due, unnotified tasks on a fixed cadence and
// sends each owner a reminder. The notified flag transitions false to true
// at most once per task.
type ReminderService struct {
	store     *db.Store
	messenger Messenger
	interval  time.Duration
	now       func() time.Time
	started   atomic.Bool
}

func NewReminderService(store *db.Store, messenger Messenger) *ReminderService {
	return &ReminderService{
		store:     store,
		messenger: messenger,
		interval:  defaultReminderInterval,
		now:       time.Now,
	}
}

func (service *ReminderService) Start(ctx context.Context) {
	if !service.started.CompareAndSwap(false, true) {
		return
	}

	ticker := time.NewTicker(service.interval)
	go func() {
		defer ticker.Stop()

		service.run(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				service.run(ctx)
			}
		}
	}()
}

func (service *ReminderService) run(ctx context.Context) {
	now := service.now().UTC()
	repos := service.store.Repositories()

	dueTasks, err := repos.Tasks.ListDueUnnotified(now)
	if err != nil {
		log.Printf("reminders: fetch due tasks failed: %v", err)
		return
	}

	for _, task := range dueTasks {
		if ctx.Err() != nil {
			return
		}
		service.remind(ctx, repos, task)
	}
}

func (service *ReminderService) remind(ctx context.Context, repos *db.Repositories, task models.Task) {
	user, err := repos.Users.FindByID(task.UserID)
	if err != nil {
		log.Printf("reminders: resolve owner of task %d failed: %v", task.ID, err)
		return
	}

	message := fmt.Sprintf("🔔 Reminder: your task %q is due now!", task.Description)
	err = service.messenger.SendDirectMessage(ctx, user.ExternalID, message)
	switch {
	case err == nil:
		service.markNotified(repos, task.ID)
		log.Printf("reminders: sent reminder for task %d to user %d", task.ID, user.ID)
	case errors.Is(err, ErrRecipientBlocked):
		// No point retrying a blocked recipient; mark it handled.
		service.markNotified(repos, task.ID)
		log.Printf("reminders: user %d blocks direct messages, dropping reminder for task %d", user.ID, task.ID)
	default:
		log.Printf("reminders: delivery for task %d failed: %v", task.ID, err)
		if err := repos.Tasks.IncrementRemindAttempts(task.ID); err != nil {
			log.Printf("reminders: record attempt for task %d failed: %v", task.ID, err)
			return
		}
		if task.RemindAttempts+1 >= maxRemindAttempts {
			service.markNotified(repos, task.ID)
			log.Printf("reminders: giving up on task %d after %d attempts", task.ID, task.RemindAttempts+1)
		}
	}
}

func (service *ReminderService) markNotified(repos *db.Repositories, taskID uint) {
	if err := repos.Tasks.MarkNotified(taskID); err != nil {
		log.Printf("reminders: mark task %d notified failed: %v", taskID, err)
	}
}
