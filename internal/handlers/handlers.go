package handlers

import (
	"context"
	"net/http"

	"dropship-dashboard/internal/cache"
	"dropship-dashboard/internal/logger"
	"dropship-dashboard/internal/models"
	"dropship-dashboard/internal/scraper"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

// Store é a persistência lida e gravada pelas páginas
type Store interface {
	ListProducts(ctx context.Context) ([]models.StoreProduct, error)
	UpsertProduct(ctx context.Context, p *models.StoreProduct) (int64, error)
	CountProducts(ctx context.Context) (int, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
	CountOrdersByStatus(ctx context.Context) (map[string]int, error)
	SaveSettings(ctx context.Context, s models.Settings) error
	LoadSettings(ctx context.Context) (models.Settings, error)
}

// Catalogs resolve nomes de plataforma em catálogos
type Catalogs interface {
	Find(platform string) (scraper.Catalog, error)
	Platforms() []string
}

// Supplier é a conta ativa no fornecedor
type Supplier interface {
	SetCredentials(username, password string)
	HasCredentials() bool
	ImportProduct(ctx context.Context, productID string) error
}

// Analyzer fornece as funções de análise de mercado
type Analyzer interface {
	AnalyzeSentiment(ctx context.Context, product string, reviews []string) models.Sentiment
	GenerateDescription(ctx context.Context, product string, keywords []string) string
	MarketTrends(category string) []models.Trend
	RecommendProducts(categories []string, budget float64) []models.Recommendation
}

// Tasks é o registro de tarefas
type Tasks interface {
	ScheduleTask(taskType, frequency string, params map[string]any) (string, error)
	CancelTask(id string) error
	GetTask(id string) (*models.ScheduledTask, error)
	ListTasks() []*models.ScheduledTask
}

// Recorder recebe as métricas do painel
type Recorder interface {
	RequestRecorder
	ObserveSearch(platform, outcome string)
	ObserveImport(outcome string)
	Handler() http.Handler
}

// Deps são as dependências dos handlers HTTP
type Deps struct {
	Store    Store
	Catalogs Catalogs
	Cache    cache.SearchCache
	Supplier Supplier
	Analyzer Analyzer
	Tasks    Tasks
	Metrics  Recorder
	Sessions sessions.Store
	Logger   *zap.Logger

	// RateLimitPerMinute limita por cliente as requisições que acionam o navegador
	RateLimitPerMinute int
	// MaxResults limita os resultados de uma busca
	MaxResults int
}

// Handler serve as páginas do painel e a API JSON
type Handler struct {
	store    Store
	catalogs Catalogs
	cache    cache.SearchCache
	supplier Supplier
	analyzer Analyzer
	tasks    Tasks
	metrics  Recorder
	sessions sessions.Store
	logger   *zap.Logger

	maxResults int
}

// New cria um Handler
func New(d Deps) *Handler {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.MaxResults <= 0 {
		d.MaxResults = defaultMaxResults
	}
	return &Handler{
		store:      d.Store,
		catalogs:   d.Catalogs,
		cache:      d.Cache,
		supplier:   d.Supplier,
		analyzer:   d.Analyzer,
		tasks:      d.Tasks,
		metrics:    d.Metrics,
		sessions:   d.Sessions,
		logger:     d.Logger.Named("http"),
		maxResults: d.MaxResults,
	}
}

func (h *Handler) log(c *gin.Context) *zap.Logger {
	return logger.FromContext(c, h.logger)
}

// render escreve a página com os dados que todo template espera
func (h *Handler) render(c *gin.Context, status int, page string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Flashes"] = h.flashes(c)
	data["CsrfField"] = csrf.TemplateField(c.Request)
	data["Active"] = page
	c.HTML(status, page+".html", data)
}

// redirect guarda uma mensagem flash e manda o navegador para path
func (h *Handler) redirect(c *gin.Context, path, kind, message string) {
	h.flash(c, kind, message)
	c.Redirect(http.StatusSeeOther, path)
}

func (h *Handler) jsonError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
