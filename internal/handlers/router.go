package handlers

import (
	"embed"
	"fmt"
	"html/template"
	"time"

	"dropship-dashboard/internal/logger"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templatesFS embed.FS

const defaultMaxResults = 10

// NewRouter monta o engine do gin com todas as rotas do painel
func NewRouter(d Deps) (*gin.Engine, error) {
	h := New(d)

	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	if err := registerValidators(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(RequestID())
	r.Use(logger.GinMiddleware(h.logger))
	r.Use(logger.Recovery(h.logger))
	r.Use(SecurityHeaders())
	if h.metrics != nil {
		r.Use(Metrics(h.metrics))
	}

	limited := NewRateLimiter(d.RateLimitPerMinute).Middleware()

	r.GET("/", h.Index)
	r.GET("/products", h.Products)
	r.GET("/search_products", h.SearchForm)
	r.POST("/search_products", limited, h.SearchProducts)
	r.GET("/import_product/:id", limited, h.ImportProduct)
	r.GET("/analyze_market", h.AnalyzeMarket)
	r.GET("/orders", h.Orders)
	r.GET("/settings", h.Settings)
	r.POST("/save_settings", h.SaveSettings)
	r.POST("/schedule_task", h.ScheduleTask)
	r.POST("/cancel_task/:id", h.CancelTask)

	api := r.Group("/api")
	api.GET("/products", h.APIProducts)
	api.GET("/tasks", h.APITasks)
	api.GET("/tasks/:id", h.APITask)
	api.GET("/recommendations", h.APIRecommendations)
	api.POST("/describe", h.APIDescribe)
	api.POST("/sentiment", h.APISentiment)

	r.GET("/healthz", h.Health)
	if h.metrics != nil {
		r.GET("/metrics", gin.WrapH(h.metrics.Handler()))
	}
	return r, nil
}

var templateFuncs = template.FuncMap{
	"datetime": func(t *time.Time) string {
		if t == nil || t.IsZero() {
			return "-"
		}
		return t.Format("2006-01-02 15:04")
	},
	"percent": func(f float64) string {
		return fmt.Sprintf("%.0f%%", f*100)
	},
}

func parseTemplates() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}
