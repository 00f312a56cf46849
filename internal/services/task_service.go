package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/elkmoss/gritbot/internal/db"
	"github.com/elkmoss/gritbot/internal/models"
	"gorm.io/gorm"
)

const TaskCompletionPoints = 10

// TaskService owns the task lifecycle: every operation resolves the user by
// their chat-platform id and runs inside one store transaction.
type TaskService struct {
	store *db.Store
	now   func() time.Time
}

func NewTaskService(store *db.Store) *TaskService {
	return &TaskService{store: store, now: time.Now}
}

func (service *TaskService) AddTask(externalID string, raw string) (models.Task, error) {
	if strings.TrimSpace(raw) == "" {
		return models.Task{}, ErrEmptyDescription
	}

	now := service.now().UTC()
	input, err := ParseTaskInput(raw, now)
	if err != nil {
		return models.Task{}, err
	}
	if input.Description == "" {
		return models.Task{}, ErrEmptyDescription
	}

	priority := input.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	var task models.Task
	err = service.store.Transaction(func(repos *db.Repositories) error {
		user, err := repos.Users.FindOrCreateByExternalID(externalID)
		if err != nil {
			return fmt.Errorf("resolve user: %w", err)
		}

		task = models.Task{
			UserID:      user.ID,
			Description: input.Description,
			DueAt:       input.DueAt,
			Priority:    priority,
			AddedAt:     now,
		}
		return repos.Tasks.Create(&task)
	})
	if err != nil {
		return models.Task{}, err
	}
	return task, nil
}

func (service *TaskService) ListPending(externalID string) ([]models.Task, error) {
	var tasks []models.Task
	err := service.store.Transaction(func(repos *db.Repositories) error {
		user, err := repos.Users.FindOrCreateByExternalID(externalID)
		if err != nil {
			return fmt.Errorf("resolve user: %w", err)
		}
		tasks, err = repos.Tasks.ListPendingForUser(user.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// EditTask re-parses the raw text with add semantics except for two rules:
// an absent "by" clause clears any previous due date, and an absent priority
// marker keeps the previous tier. A changed due date re-arms the reminder.
func (service *TaskService) EditTask(externalID string, taskID uint, raw string) (models.Task, error) {
	if strings.TrimSpace(raw) == "" {
		return models.Task{}, ErrEmptyDescription
	}

	now := service.now().UTC()
	input, err := ParseTaskInput(raw, now)
	if err != nil {
		return models.Task{}, err
	}
	if input.Description == "" {
		return models.Task{}, ErrEmptyDescription
	}

	var task models.Task
	err = service.store.Transaction(func(repos *db.Repositories) error {
		user, err := repos.Users.FindOrCreateByExternalID(externalID)
		if err != nil {
			return fmt.Errorf("resolve user: %w", err)
		}

		task, err = repos.Tasks.FindPendingForUser(taskID, user.ID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		if err != nil {
			return fmt.Errorf("load task: %w", err)
		}

		if !sameDueDate(task.DueAt, input.DueAt) {
			task.Notified = false
			task.RemindAttempts = 0
		}

		task.Description = input.Description
		task.DueAt = input.DueAt
		if input.Priority != "" {
			task.Priority = input.Priority
		}
		task.EditedAt = &now
		return repos.Tasks.Save(&task)
	})
	if err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// CompleteTask closes the task, rolls the streak forward and awards points
// plus any newly crossed badge thresholds, all in one transaction.
func (service *TaskService) CompleteTask(externalID string, taskID uint) (models.Task, []string, error) {
	now := service.now().UTC()

	var task models.Task
	var awarded []string
	err := service.store.Transaction(func(repos *db.Repositories) error {
		user, err := repos.Users.FindOrCreateByExternalID(externalID)
		if err != nil {
			return fmt.Errorf("resolve user: %w", err)
		}

		task, err = repos.Tasks.FindPendingForUser(taskID, user.ID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		if err != nil {
			return fmt.Errorf("load task: %w", err)
		}

		task.Completed = true
		task.CompletedAt = &now
		if err := repos.Tasks.Save(&task); err != nil {
			return fmt.Errorf("complete task: %w", err)
		}

		awarded, err = UpdateStreakAndBadges(repos, &user, now)
		if err != nil {
			return fmt.Errorf("update streak: %w", err)
		}
		return repos.Users.AddPoints(user.ID, TaskCompletionPoints)
	})
	if err != nil {
		return models.Task{}, nil, err
	}
	return task, awarded, nil
}

// Profile backs the badges and points commands.
func (service *TaskService) Profile(externalID string) (models.User, []string, error) {
	var user models.User
	var badges []string
	err := service.store.Transaction(func(repos *db.Repositories) error {
		var err error
		user, err = repos.Users.FindOrCreateByExternalID(externalID)
		if err != nil {
			return fmt.Errorf("resolve user: %w", err)
		}
		badges, err = repos.Badges.ListNamesForUser(user.ID)
		return err
	})
	if err != nil {
		return models.User{}, nil, err
	}
	return user, badges, nil
}

func sameDueDate(previous *time.Time, next *time.Time) bool {
	if previous == nil || next == nil {
		return previous == nil && next == nil
	}
	return previous.Equal(*next)
}
