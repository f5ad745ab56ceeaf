package repository

import (
	"context"
	"time"

	"github.com/nat/todo-api/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uint) (*domain.User, error)
	GetByNationalID(ctx context.Context, nationalID string) (*domain.User, error)
	ExistsByNationalID(ctx context.Context, nationalID string) (bool, error)
}

type ActivityRepository interface {
	Create(ctx context.Context, activity *domain.Activity) error
	GetByID(ctx context.Context, userID, id uint) (*domain.Activity, error)
	ListByUserID(ctx context.Context, userID uint) ([]*domain.Activity, error)
	Update(ctx context.Context, userID, id uint, name, description string, deadline time.Time) error
	ToggleConfirmed(ctx context.Context, userID, id uint) error
	Delete(ctx context.Context, userID, id uint) error
}

type Repositories struct {
	User     UserRepository
	Activity ActivityRepository
}
