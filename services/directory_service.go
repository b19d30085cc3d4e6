package services

import (
	"context"

	"takvim.link/configs/configslog"
	"takvim.link/models"
	"takvim.link/repositories"

	"go.uber.org/zap"
)

// IDirectoryService takım ve kullanıcı listeleri için arayüz.
type IDirectoryService interface {
	ListTeams(ctx context.Context) ([]models.Team, error)
	ListUsers(ctx context.Context) ([]models.Member, error)
}

type DirectoryService struct {
	repo repositories.IDirectoryRepository
}

func NewDirectoryService(repo repositories.IDirectoryRepository) *DirectoryService {
	return &DirectoryService{repo: repo}
}

func (s *DirectoryService) ListTeams(ctx context.Context) ([]models.Team, error) {
	teams, err := s.repo.ListTeams(ctx)
	if err != nil {
		configslog.Log.Error("Takımlar alınamadı", zap.Error(err))
		return nil, ErrStorageFailure
	}
	return teams, nil
}

func (s *DirectoryService) ListUsers(ctx context.Context) ([]models.Member, error) {
	members, err := s.repo.ListMembers(ctx)
	if err != nil {
		configslog.Log.Error("Kullanıcılar alınamadı", zap.Error(err))
		return nil, ErrStorageFailure
	}
	return members, nil
}

var _ IDirectoryService = (*DirectoryService)(nil)
