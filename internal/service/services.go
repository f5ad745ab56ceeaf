package service

import (
	"github.com/nat/todo-api/internal/config"
	"github.com/nat/todo-api/internal/repository"
)

type Services struct {
	Auth     *AuthService
	Activity *ActivityService
}

func NewServices(repos *repository.Repositories, cfg *config.Config) *Services {
	return &Services{
		Auth:     NewAuthService(repos.User, cfg),
		Activity: NewActivityService(repos.Activity),
	}
}
