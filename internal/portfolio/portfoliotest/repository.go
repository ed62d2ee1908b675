// Package portfoliotest provides an in-memory repository and sample data
// for tests of the layers above the repository port.
package portfoliotest

import (
	"context"
	"sync"
	"time"

	"github.com/argenis972/portfolio-backend/internal/apperr"
	"github.com/argenis972/portfolio-backend/internal/portfolio/domain"
)

// Repository is an in-memory repository.Repository. Setting Err makes every
// call fail with it.
type Repository struct {
	mu          sync.Mutex
	Profile     domain.Profile
	Projects    []domain.Project
	Stack       []domain.StackItem
	Experiences []domain.WorkExperience
	Err         error
	Calls       int
}

// NewRepository returns a repository filled with the sample data below.
func NewRepository() *Repository {
	return &Repository{
		Profile:     Profile(),
		Projects:    Projects(),
		Stack:       Stack(),
		Experiences: Experiences(),
	}
}

// Failing returns a repository whose every call fails with an
// infrastructure error.
func Failing(source string) *Repository {
	return &Repository{Err: apperr.Infrastructure("falha ao ler dados", source, context.DeadlineExceeded)}
}

func (r *Repository) enter() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls++
	return r.Err
}

func (r *Repository) GetProfile(context.Context) (domain.Profile, error) {
	if err := r.enter(); err != nil {
		return domain.Profile{}, err
	}
	return r.Profile, nil
}

func (r *Repository) ListProjects(context.Context) ([]domain.Project, error) {
	if err := r.enter(); err != nil {
		return nil, err
	}
	return append([]domain.Project{}, r.Projects...), nil
}

func (r *Repository) GetProject(_ context.Context, id string) (domain.Project, bool, error) {
	if err := r.enter(); err != nil {
		return domain.Project{}, false, err
	}
	for _, p := range r.Projects {
		if p.ID == id {
			return p, true, nil
		}
	}
	return domain.Project{}, false, nil
}

func (r *Repository) ListStackItems(context.Context) ([]domain.StackItem, error) {
	if err := r.enter(); err != nil {
		return nil, err
	}
	return append([]domain.StackItem{}, r.Stack...), nil
}

func (r *Repository) ListExperiences(context.Context) ([]domain.WorkExperience, error) {
	if err := r.enter(); err != nil {
		return nil, err
	}
	return append([]domain.WorkExperience{}, r.Experiences...), nil
}

func ptr[T any](v T) *T { return &v }

func Profile() domain.Profile {
	return domain.Profile{
		Name:         "Argenis Lopez",
		Title:        "Desenvolvedor Backend",
		Location:     "São Paulo, Brasil",
		Email:        "contato@example.com",
		GitHub:       "https://github.com/argenis972",
		LinkedIn:     "https://linkedin.com/in/argenis",
		Description:  "Desenvolvedor focado em APIs.",
		Availability: "Disponível para novos projetos",
	}
}

// Projects are stored unsorted: two featured projects out of name order
// and a non-featured one that sorts first by name.
func Projects() []domain.Project {
	return []domain.Project{
		{
			ID: "portfolio-api", Name: "Portfolio API",
			ShortDescription: "API do portfólio", LongDescription: "API REST do portfólio pessoal.",
			Technologies: []string{"Go", "Gin"}, Features: []string{"Contato"}, Learnings: []string{"Middlewares"},
			RepoURL: ptr("https://github.com/argenis972/portfolio-api"), Featured: true,
		},
		{
			ID: "agenda", Name: "Agenda",
			ShortDescription: "Agenda de tarefas", LongDescription: "Aplicação de agenda.",
			Technologies: []string{"Python"}, Features: []string{}, Learnings: []string{},
		},
		{
			ID: "loja", Name: "Loja Virtual",
			ShortDescription: "E-commerce", LongDescription: "Loja virtual completa.",
			Technologies: []string{"React", "Node"}, Features: []string{"Carrinho"}, Learnings: []string{"Estado"},
			DemoURL: ptr("https://loja.example.com"), Featured: true,
		},
	}
}

func Stack() []domain.StackItem {
	return []domain.StackItem{
		{Name: "Go", Category: "backend", Level: 4},
		{Name: "React", Category: "frontend", Level: 3, Icon: ptr("react.svg")},
		{Name: "PostgreSQL", Category: "banco", Level: 3},
		{Name: "Python", Category: "backend", Level: 5},
	}
}

// Experiences are stored oldest first with the current one last.
func Experiences() []domain.WorkExperience {
	return []domain.WorkExperience{
		{
			ID: "estagio", Role: "Estagiário", Company: "Alfa", Location: "Remoto",
			StartDate: domain.NewDate(2019, time.February, 1), EndDate: ptr(domain.NewDate(2019, time.December, 20)),
			Description: "Suporte", Technologies: []string{"PHP"},
		},
		{
			ID: "junior", Role: "Desenvolvedor Júnior", Company: "Beta", Location: "São Paulo",
			StartDate: domain.NewDate(2020, time.March, 1), EndDate: ptr(domain.NewDate(2022, time.June, 30)),
			Description: "APIs", Technologies: []string{"Python"},
		},
		{
			ID: "pleno", Role: "Desenvolvedor Pleno", Company: "Gama", Location: "Remoto",
			StartDate: domain.NewDate(2022, time.July, 1),
			Description: "Go", Technologies: []string{"Go"}, Current: true,
		},
	}
}
