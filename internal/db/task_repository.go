package db

import (
	"time"

	"github.com/elkmoss/gritbot/internal/models"
	"gorm.io/gorm"
)

type TaskRepository struct {
	database *gorm.DB
}

func NewTaskRepository(database *gorm.DB) *TaskRepository {
	return &TaskRepository{database: database}
}

func (repo *TaskRepository) Create(task *models.Task) error {
	return repo.database.Create(task).Error
}

func (repo *TaskRepository) Save(task *models.Task) error {
	return repo.database.Save(task).Error
}

// FindPendingForUser returns the task only while it is still open; completed
// tasks are invisible to edit/complete lookups.
func (repo *TaskRepository) FindPendingForUser(taskID uint, userID uint) (models.Task, error) {
	var task models.Task
	err := repo.database.
		Where("id = ? AND user_id = ? AND completed = ?", taskID, userID, false).
		First(&task).Error
	if err != nil {
		return models.Task{}, err
	}
	return task, nil
}

func (repo *TaskRepository) ListPendingForUser(userID uint) ([]models.Task, error) {
	tasks := make([]models.Task, 0)
	err := repo.database.
		Where("user_id = ? AND completed = ?", userID, false).
		Order("id ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListDueUnnotified feeds the reminder sweep: open tasks whose due time has
// passed and that have not been reminded yet.
func (repo *TaskRepository) ListDueUnnotified(now time.Time) ([]models.Task, error) {
	tasks := make([]models.Task, 0)
	err := repo.database.
		Where("completed = ? AND notified = ? AND due_at IS NOT NULL AND due_at <= ?", false, false, now).
		Order("id ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// MarkNotified flips the notified flag at most once; a task already marked is
// left untouched.
func (repo *TaskRepository) MarkNotified(taskID uint) error {
	return repo.database.Model(&models.Task{}).
		Where("id = ? AND notified = ?", taskID, false).
		Update("notified", true).Error
}

func (repo *TaskRepository) IncrementRemindAttempts(taskID uint) error {
	return repo.database.Model(&models.Task{}).
		Where("id = ?", taskID).
		Update("remind_attempts", gorm.Expr("remind_attempts + ?", 1)).Error
}
