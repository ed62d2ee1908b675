package bootstrap

import (
	"net/http"
	"time"

	httpapi "github.com/argenis972/portfolio-backend/internal/api/http"
	"github.com/argenis972/portfolio-backend/internal/api/http/middleware"
	"github.com/argenis972/portfolio-backend/internal/apperr"
	portfoliohttp "github.com/argenis972/portfolio-backend/internal/portfolio/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RouterDeps struct {
	Logger         *zap.Logger
	Version        string
	Environment    string
	StartedAt      time.Time
	AllowedOrigins []string
	Portfolio      portfoliohttp.PortfolioReader
	Contact        portfoliohttp.ContactSender
	Ping           httpapi.PingFunc
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestContext(dep.Logger), middleware.ErrorMapper())
	if len(dep.AllowedOrigins) > 0 {
		r.Use(cors.New(corsConfig(dep.AllowedOrigins)))
	}
	r.NoRoute(func(c *gin.Context) {
		_ = c.Error(apperr.NotFound("Rota '"+c.Request.URL.Path+"' não encontrada", ""))
	})

	healthHandler := httpapi.NewHealthHandler(dep.Version, dep.Environment, dep.StartedAt, dep.Ping)
	healthHandler.RegisterRoutes(r)

	portfolio := portfoliohttp.New(dep.Portfolio, dep.Contact)
	for _, prefix := range []string{"/api", "/api/v1"} {
		api := r.Group(prefix)
		healthHandler.RegisterRoutes(api)
		portfolio.Register(api)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{middleware.HeaderRequestID, middleware.HeaderResponseTime},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	return cfg
}
