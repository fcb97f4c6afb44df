package service

import (
	"socialfeed/internal/repository"
	"socialfeed/internal/storage"
)

type Service struct {
	Auth AuthService
	User UserService
	Feed FeedService

	Recounter *Recounter
}

func NewService(repo *repository.Repository, storage storage.Storage) *Service {
	recounter := NewRecounter(repo.Account, repo.Feed)

	return &Service{
		Auth:      NewAuthService(repo.Account),
		User:      NewUserService(repo.Account, storage),
		Feed:      NewFeedService(repo.Feed, repo.Account, recounter),
		Recounter: recounter,
	}
}
