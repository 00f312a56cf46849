package db

import (
	"github.com/elkmoss/gritbot/internal/models"
	"gorm.io/gorm"
)

type BadgeRepository struct {
	database *gorm.DB
}

func NewBadgeRepository(database *gorm.DB) *BadgeRepository {
	return &BadgeRepository{database: database}
}

func (repo *BadgeRepository) Create(badge *models.Badge) error {
	return repo.database.Create(badge).Error
}

func (repo *BadgeRepository) ExistsForUser(userID uint, name string) (bool, error) {
	var matched int64
	err := repo.database.Model(&models.Badge{}).
		Where("user_id = ? AND name = ?", userID, name).
		Count(&matched).Error
	if err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *BadgeRepository) ListNamesForUser(userID uint) ([]string, error) {
	names := make([]string, 0)
	err := repo.database.Model(&models.Badge{}).
		Where("user_id = ?", userID).
		Order("id ASC").
		Pluck("name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}
