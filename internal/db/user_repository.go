package db

import (
	"errors"
	"time"

	"github.com/elkmoss/gritbot/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

func (repo *UserRepository) FindByID(userID uint) (models.User, error) {
	var user models.User
	if err := repo.database.First(&user, userID).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

// FindOrCreateByExternalID resolves a user by their chat-platform id, creating
// the row on first interaction.
func (repo *UserRepository) FindOrCreateByExternalID(externalID string) (models.User, error) {
	var user models.User
	err := repo.database.Where("external_id = ?", externalID).First(&user).Error
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, err
	}

	user = models.User{ExternalID: externalID, CreatedAt: time.Now().UTC()}
	if err := repo.database.Create(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) ListAll() ([]models.User, error) {
	users := make([]models.User, 0)
	if err := repo.database.Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (repo *UserRepository) AddPoints(userID uint, points int) error {
	return repo.database.Model(&models.User{}).
		Where("id = ?", userID).
		Update("points", gorm.Expr("points + ?", points)).Error
}

func (repo *UserRepository) UpdateStreak(userID uint, streak int, lastCompleted time.Time) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]any{
		"streak":         streak,
		"last_completed": lastCompleted,
	}).Error
}

// DeleteAccountAndRelatedData removes the user together with their tasks and
// badges. Not reachable from any command yet; kept for operator cleanup.
func (repo *UserRepository) DeleteAccountAndRelatedData(userID uint) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Badge{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, userID).Error
	})
}
