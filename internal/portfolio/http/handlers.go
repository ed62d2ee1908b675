package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/argenis972/portfolio-backend/internal/apperr"
	"github.com/argenis972/portfolio-backend/internal/portfolio/service"
	"github.com/gin-gonic/gin"
)

const contactSuccessMessage = "Mensagem enviada com sucesso! Retornarei em breve."

func (h *Handler) profile(c *gin.Context) {
	p, err := h.portfolio.Profile(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) listProjects(c *gin.Context) {
	projects, err := h.portfolio.Projects(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	items := make([]projectSummary, 0, len(projects))
	for _, p := range projects {
		items = append(items, summarize(p))
	}
	c.JSON(http.StatusOK, projectsResponse{Projects: items, Total: len(items)})
}

func (h *Handler) getProject(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	p, found, err := h.portfolio.Project(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if !found {
		_ = c.Error(apperr.NotFound(fmt.Sprintf("Projeto '%s' não encontrado", id), ""))
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) stack(c *gin.Context) {
	groups, err := h.portfolio.Stack(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, stackResponse{Stack: service.Flatten(groups), ByCategory: groups})
}

func (h *Handler) listExperiences(c *gin.Context) {
	exps, err := h.portfolio.Experiences(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, experiencesResponse{Experiences: exps, Total: len(exps)})
}

func (h *Handler) sendContact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}

	if !h.contact.Send(c.Request.Context(), req.Name, req.Email, req.Subject, req.Message) {
		_ = c.Error(apperr.Infrastructure("Erro ao enviar mensagem. Tente novamente mais tarde.", "formspree", nil))
		return
	}
	c.JSON(http.StatusOK, contactResponse{Success: true, Message: contactSuccessMessage})
}
