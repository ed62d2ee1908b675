package http

import (
	"context"

	"github.com/argenis972/portfolio-backend/internal/portfolio/domain"
)

// PortfolioReader is the read side the routes need.
type PortfolioReader interface {
	Profile(ctx context.Context) (domain.Profile, error)
	Projects(ctx context.Context) ([]domain.Project, error)
	Project(ctx context.Context, id string) (domain.Project, bool, error)
	Stack(ctx context.Context) (domain.StackGroups, error)
	Experiences(ctx context.Context) ([]domain.WorkExperience, error)
}

// ContactSender relays a contact message and reports success.
type ContactSender interface {
	Send(ctx context.Context, name, email, subject, body string) bool
}

// Handler bundles the dependencies for portfolio HTTP endpoints.
type Handler struct {
	portfolio PortfolioReader
	contact   ContactSender
}

func New(portfolio PortfolioReader, contact ContactSender) *Handler {
	registerJSONFieldNames()
	return &Handler{portfolio: portfolio, contact: contact}
}

type projectSummary struct {
	ID               string   `json:"id"`
	Name             string   `json:"nome"`
	ShortDescription string   `json:"descricao_curta"`
	Technologies     []string `json:"tecnologias"`
	Featured         bool     `json:"destaque"`
}

func summarize(p domain.Project) projectSummary {
	return projectSummary{
		ID:               p.ID,
		Name:             p.Name,
		ShortDescription: p.ShortDescription,
		Technologies:     p.Technologies,
		Featured:         p.Featured,
	}
}

type projectsResponse struct {
	Projects []projectSummary `json:"projetos"`
	Total    int              `json:"total"`
}

type stackResponse struct {
	Stack      []domain.StackItem `json:"stack"`
	ByCategory domain.StackGroups `json:"por_categoria"`
}

type experiencesResponse struct {
	Experiences []domain.WorkExperience `json:"experiencias"`
	Total       int                     `json:"total"`
}

type contactRequest struct {
	Name    string `json:"nome" binding:"required,min=2,max=80"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"assunto" binding:"required,min=5,max=100"`
	Message string `json:"mensagem" binding:"required,min=10,max=2000"`
}

type contactResponse struct {
	Success bool   `json:"sucesso"`
	Message string `json:"mensagem"`
}
