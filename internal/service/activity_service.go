package service

import (
	"context"
	"errors"
	"time"

	"github.com/nat/todo-api/internal/domain"
	"github.com/nat/todo-api/internal/repository"
	"gorm.io/gorm"
)

// ErrActivityNotFound covers both a missing activity and one owned by a
// different user, so a caller can never confirm another user's activity
// exists.
var ErrActivityNotFound = errors.New("activity not found")

type ActivityService struct {
	activityRepo repository.ActivityRepository
}

func NewActivityService(activityRepo repository.ActivityRepository) *ActivityService {
	return &ActivityService{activityRepo: activityRepo}
}

type ActivityInput struct {
	Name        string
	Description string
	Deadline    time.Time
}

func (s *ActivityService) Create(ctx context.Context, userID uint, input ActivityInput) (*domain.Activity, error) {
	activity := &domain.Activity{
		UserID:      userID,
		Name:        input.Name,
		Description: input.Description,
		Deadline:    input.Deadline,
		Confirmed:   false,
	}

	if err := s.activityRepo.Create(ctx, activity); err != nil {
		return nil, err
	}

	return activity, nil
}

func (s *ActivityService) List(ctx context.Context, userID uint) ([]*domain.Activity, error) {
	return s.activityRepo.ListByUserID(ctx, userID)
}

func (s *ActivityService) Get(ctx context.Context, userID, id uint) (*domain.Activity, error) {
	activity, err := s.activityRepo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, err
	}
	return activity, nil
}

// Update replaces name, description and deadline; the confirmed flag is
// untouched.
func (s *ActivityService) Update(ctx context.Context, userID, id uint, input ActivityInput) error {
	err := s.activityRepo.Update(ctx, userID, id, input.Name, input.Description, input.Deadline)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrActivityNotFound
	}
	return err
}

// ToggleConfirm flips the confirmed flag; two consecutive calls restore
// the original value.
func (s *ActivityService) ToggleConfirm(ctx context.Context, userID, id uint) error {
	err := s.activityRepo.ToggleConfirmed(ctx, userID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrActivityNotFound
	}
	return err
}

func (s *ActivityService) Delete(ctx context.Context, userID, id uint) error {
	err := s.activityRepo.Delete(ctx, userID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrActivityNotFound
	}
	return err
}
