package repositories

import (
	"context"
	"errors"

	"takvim.link/configs/configslog"
	"takvim.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IDirectoryRepository takım ve üye referans verisi.
type IDirectoryRepository interface {
	ListTeams(ctx context.Context) ([]models.Team, error)
	ListMembers(ctx context.Context) ([]models.Member, error)
	FindMember(ctx context.Context, id string) (*models.Member, error)
}

// DirectoryRepository gorm uygulaması.
type DirectoryRepository struct {
	db *gorm.DB
}

func NewDirectoryRepository(db *gorm.DB) IDirectoryRepository {
	return &DirectoryRepository{db: db}
}

func (r *DirectoryRepository) ListTeams(ctx context.Context) ([]models.Team, error) {
	var teams []models.Team
	if err := r.db.WithContext(ctx).Order("id asc").Find(&teams).Error; err != nil {
		configslog.Log.Error("DirectoryRepository.ListTeams: DB error", zap.Error(err))
		return nil, err
	}
	return teams, nil
}

func (r *DirectoryRepository) ListMembers(ctx context.Context) ([]models.Member, error) {
	var members []models.Member
	if err := r.db.WithContext(ctx).Order("id asc").Find(&members).Error; err != nil {
		configslog.Log.Error("DirectoryRepository.ListMembers: DB error", zap.Error(err))
		return nil, err
	}
	return members, nil
}

func (r *DirectoryRepository) FindMember(ctx context.Context, id string) (*models.Member, error) {
	var member models.Member
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("DirectoryRepository.FindMember: DB error", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return &member, nil
}

// DirectoryMemoryRepository sabit listelerle çalışan uygulama (memory ve mongo sürücüleri).
type DirectoryMemoryRepository struct {
	teams   []models.Team
	members []models.Member
}

func NewDirectoryMemoryRepository(teams []models.Team, members []models.Member) *DirectoryMemoryRepository {
	return &DirectoryMemoryRepository{
		teams:   append([]models.Team{}, teams...),
		members: append([]models.Member{}, members...),
	}
}

func (r *DirectoryMemoryRepository) ListTeams(_ context.Context) ([]models.Team, error) {
	return append([]models.Team{}, r.teams...), nil
}

func (r *DirectoryMemoryRepository) ListMembers(_ context.Context) ([]models.Member, error) {
	return append([]models.Member{}, r.members...), nil
}

func (r *DirectoryMemoryRepository) FindMember(_ context.Context, id string) (*models.Member, error) {
	for _, m := range r.members {
		if m.ID == id {
			member := m
			return &member, nil
		}
	}
	return nil, ErrNotFound
}

var (
	_ IDirectoryRepository = (*DirectoryRepository)(nil)
	_ IDirectoryRepository = (*DirectoryMemoryRepository)(nil)
)
