package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/argenis972/portfolio-backend/internal/apperr"
	"github.com/argenis972/portfolio-backend/internal/portfolio/domain"
)

// Logical dataset names, shared by every Source.
const (
	DatasetProfile     = "sobre"
	DatasetProjects    = "projetos"
	DatasetStack       = "stack"
	DatasetExperiences = "experiencias"
)

// Datasets lists every dataset the repository reads.
var Datasets = []string{DatasetProfile, DatasetProjects, DatasetStack, DatasetExperiences}

var ErrDatasetNotFound = errors.New("dataset not found")

// Repository is the read-only port over the portfolio dataset. Every call
// returns a fresh snapshot; failures are always infrastructure errors.
type Repository interface {
	GetProfile(ctx context.Context) (domain.Profile, error)
	ListProjects(ctx context.Context) ([]domain.Project, error)
	GetProject(ctx context.Context, id string) (domain.Project, bool, error)
	ListStackItems(ctx context.Context) ([]domain.StackItem, error)
	ListExperiences(ctx context.Context) ([]domain.WorkExperience, error)
}

// Source returns the raw JSON document stored under a dataset name.
type Source interface {
	Name() string
	Fetch(ctx context.Context, dataset string) ([]byte, error)
}

// Writer stores a raw document under a dataset name. Only the seed command
// writes; the API never does.
type Writer interface {
	Put(ctx context.Context, dataset string, doc []byte) error
}

func knownDataset(name string) bool {
	for _, d := range Datasets {
		if d == name {
			return true
		}
	}
	return false
}

// DocumentRepository implements Repository over any Source.
type DocumentRepository struct {
	src Source
}

func NewDocumentRepository(src Source) *DocumentRepository {
	return &DocumentRepository{src: src}
}

func (r *DocumentRepository) read(ctx context.Context, dataset string, into any) error {
	raw, err := r.src.Fetch(ctx, dataset)
	if err != nil {
		return apperr.Infrastructure("falha ao ler dataset "+dataset, r.src.Name(), err)
	}
	if err := json.Unmarshal(raw, into); err != nil {
		return r.invalid(dataset, err)
	}
	return nil
}

func (r *DocumentRepository) invalid(dataset string, err error) error {
	return apperr.Infrastructure("dataset inválido "+dataset, r.src.Name(), err)
}

func (r *DocumentRepository) GetProfile(ctx context.Context) (domain.Profile, error) {
	var p domain.Profile
	if err := r.read(ctx, DatasetProfile, &p); err != nil {
		return domain.Profile{}, err
	}
	if p.Name == "" {
		return domain.Profile{}, r.invalid(DatasetProfile, errors.New("missing nome"))
	}
	return p, nil
}

func (r *DocumentRepository) ListProjects(ctx context.Context) ([]domain.Project, error) {
	var projects []domain.Project
	if err := r.read(ctx, DatasetProjects, &projects); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(projects))
	for i := range projects {
		p := &projects[i]
		if p.ID == "" || p.Name == "" {
			return nil, r.invalid(DatasetProjects, fmt.Errorf("project %d: missing id or nome", i))
		}
		if _, dup := seen[p.ID]; dup {
			return nil, r.invalid(DatasetProjects, fmt.Errorf("duplicate project id %q", p.ID))
		}
		seen[p.ID] = struct{}{}
		p.Technologies = orEmpty(p.Technologies)
		p.Features = orEmpty(p.Features)
		p.Learnings = orEmpty(p.Learnings)
	}
	if projects == nil {
		projects = []domain.Project{}
	}
	return projects, nil
}

// GetProject scans the project list; a missing id is (zero, false, nil).
func (r *DocumentRepository) GetProject(ctx context.Context, id string) (domain.Project, bool, error) {
	projects, err := r.ListProjects(ctx)
	if err != nil {
		return domain.Project{}, false, err
	}
	for _, p := range projects {
		if p.ID == id {
			return p, true, nil
		}
	}
	return domain.Project{}, false, nil
}

func (r *DocumentRepository) ListStackItems(ctx context.Context) ([]domain.StackItem, error) {
	var items []domain.StackItem
	if err := r.read(ctx, DatasetStack, &items); err != nil {
		return nil, err
	}
	for i, it := range items {
		if it.Name == "" || it.Category == "" {
			return nil, r.invalid(DatasetStack, fmt.Errorf("item %d: missing nome or categoria", i))
		}
	}
	if items == nil {
		items = []domain.StackItem{}
	}
	return items, nil
}

type experienceRecord struct {
	ID           string       `json:"id"`
	Role         string       `json:"cargo"`
	Company      string       `json:"empresa"`
	Location     string       `json:"localizacao"`
	StartDate    *domain.Date `json:"data_inicio"`
	EndDate      *domain.Date `json:"data_fim"`
	Description  string       `json:"descricao"`
	Technologies []string     `json:"tecnologias"`
	Current      bool         `json:"atual"`
}

func (r *DocumentRepository) ListExperiences(ctx context.Context) ([]domain.WorkExperience, error) {
	var records []experienceRecord
	if err := r.read(ctx, DatasetExperiences, &records); err != nil {
		return nil, err
	}

	out := make([]domain.WorkExperience, 0, len(records))
	for i, rec := range records {
		if rec.StartDate == nil {
			return nil, r.invalid(DatasetExperiences, fmt.Errorf("experience %d: missing data_inicio", i))
		}
		exp, err := domain.NewWorkExperience(domain.WorkExperience{
			ID:           rec.ID,
			Role:         rec.Role,
			Company:      rec.Company,
			Location:     rec.Location,
			StartDate:    *rec.StartDate,
			EndDate:      rec.EndDate,
			Description:  rec.Description,
			Technologies: orEmpty(rec.Technologies),
			Current:      rec.Current,
		})
		if err != nil {
			return nil, r.invalid(DatasetExperiences, err)
		}
		out = append(out, exp)
	}
	return out, nil
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
