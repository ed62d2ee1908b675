package http

import "github.com/gin-gonic/gin"

// Register attaches portfolio routes to the given router group. Every route
// is also served under its Portuguese path.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/profile", h.profile)
	rg.GET("/sobre", h.profile)

	rg.GET("/projects", h.listProjects)
	rg.GET("/projects/:id", h.getProject)
	rg.GET("/projetos", h.listProjects)
	rg.GET("/projetos/:id", h.getProject)

	rg.GET("/stack", h.stack)

	rg.GET("/experiences", h.listExperiences)
	rg.GET("/experiencias", h.listExperiences)

	rg.POST("/contact", h.sendContact)
	rg.POST("/contato", h.sendContact)
}
