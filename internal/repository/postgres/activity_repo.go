package postgres

import (
	"context"
	"time"

	"github.com/nat/todo-api/internal/domain"
	"gorm.io/gorm"
)

type activityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *activityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(ctx context.Context, activity *domain.Activity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *activityRepository) GetByID(ctx context.Context, userID, id uint) (*domain.Activity, error) {
	var activity domain.Activity
	err := r.db.WithContext(ctx).
		First(&activity, "user_id = ? AND id = ?", userID, id).Error
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

func (r *activityRepository) ListByUserID(ctx context.Context, userID uint) ([]*domain.Activity, error) {
	var activities []*domain.Activity
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("deadline ASC").
		Find(&activities).Error
	if err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *activityRepository) Update(ctx context.Context, userID, id uint, name, description string, deadline time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Activity{}).
		Where("user_id = ? AND id = ?", userID, id).
		Updates(map[string]interface{}{
			"name":        name,
			"description": description,
			"deadline":    deadline,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ToggleConfirmed flips the confirmed flag in a single scoped UPDATE so
// concurrent toggles never lose a flip to a stale read.
func (r *activityRepository) ToggleConfirmed(ctx context.Context, userID, id uint) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Activity{}).
		Where("user_id = ? AND id = ?", userID, id).
		UpdateColumn("confirmed", gorm.Expr("NOT confirmed"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *activityRepository) Delete(ctx context.Context, userID, id uint) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&domain.Activity{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
