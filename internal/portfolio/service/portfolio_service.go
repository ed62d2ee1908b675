package service

import (
	"context"

	"github.com/argenis972/portfolio-backend/internal/portfolio/domain"
	"github.com/argenis972/portfolio-backend/internal/portfolio/repository"
)

// PortfolioService applies ordering and grouping on top of the repository.
type PortfolioService struct {
	repo repository.Repository
}

func NewPortfolioService(repo repository.Repository) *PortfolioService {
	return &PortfolioService{repo: repo}
}

func (s *PortfolioService) Profile(ctx context.Context) (domain.Profile, error) {
	return s.repo.GetProfile(ctx)
}

func (s *PortfolioService) Projects(ctx context.Context) ([]domain.Project, error) {
	projects, err := s.repo.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	return SortProjects(projects), nil
}

// Project looks a project up by id. A missing id is not an error.
func (s *PortfolioService) Project(ctx context.Context, id string) (domain.Project, bool, error) {
	return s.repo.GetProject(ctx, id)
}

func (s *PortfolioService) Stack(ctx context.Context) (domain.StackGroups, error) {
	items, err := s.repo.ListStackItems(ctx)
	if err != nil {
		return nil, err
	}
	return GroupStack(items), nil
}

func (s *PortfolioService) Experiences(ctx context.Context) ([]domain.WorkExperience, error) {
	exps, err := s.repo.ListExperiences(ctx)
	if err != nil {
		return nil, err
	}
	return SortExperiences(exps), nil
}
