package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"dropship-dashboard/internal/cache"
	"dropship-dashboard/internal/models"
	"dropship-dashboard/internal/scheduler"
	"dropship-dashboard/internal/scraper"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	defaultPlatform = "dsers"

	flashSuccess = "success"
	flashError   = "error"
)

// Index mostra o resumo do painel
func (h *Handler) Index(c *gin.Context) {
	ctx := c.Request.Context()

	products, err := h.store.CountProducts(ctx)
	if err != nil {
		h.log(c).Error("failed to count products", zap.Error(err))
	}
	orders, err := h.store.CountOrdersByStatus(ctx)
	if err != nil {
		h.log(c).Error("failed to count orders", zap.Error(err))
		orders = map[string]int{}
	}
	totalOrders := 0
	for _, n := range orders {
		totalOrders += n
	}

	h.render(c, http.StatusOK, "index", gin.H{
		"ProductCount":    products,
		"OrderCount":      totalOrders,
		"PendingOrders":   orders[models.OrderStatusPending],
		"ProcessedOrders": orders[models.OrderStatusProcessed],
		"TaskCount":       len(h.tasks.ListTasks()),
	})
}

// Products lista os produtos importados
func (h *Handler) Products(c *gin.Context) {
	data := gin.H{}
	products, err := h.store.ListProducts(c.Request.Context())
	if err != nil {
		h.log(c).Error("failed to list products", zap.Error(err))
		data["Error"] = "No se pudieron cargar los productos"
	}
	data["Products"] = products
	h.render(c, http.StatusOK, "products", data)
}

// SearchForm mostra a página de busca vazia
func (h *Handler) SearchForm(c *gin.Context) {
	h.render(c, http.StatusOK, "search_products", gin.H{
		"Platforms": h.catalogs.Platforms(),
		"Platform":  defaultPlatform,
	})
}

// SearchProducts busca no catálogo do fornecedor e guarda os resultados para
// que possam ser importados depois
func (h *Handler) SearchProducts(c *gin.Context) {
	keyword := strings.TrimSpace(c.PostForm("keyword"))
	platform := strings.TrimSpace(c.DefaultPostForm("platform", defaultPlatform))
	data := gin.H{
		"Platforms": h.catalogs.Platforms(),
		"Platform":  platform,
		"Keyword":   keyword,
	}
	if keyword == "" {
		h.render(c, http.StatusOK, "search_products", data)
		return
	}

	catalog, err := h.catalogs.Find(platform)
	if err != nil {
		data["Error"] = "Plataforma no soportada: " + platform
		h.render(c, http.StatusBadRequest, "search_products", data)
		return
	}

	ctx := c.Request.Context()
	results, err := catalog.Search(ctx, keyword, h.maxResults)
	if err != nil {
		h.log(c).Error("search failed",
			zap.String("platform", catalog.Name()),
			zap.String("keyword", keyword),
			zap.Error(err),
		)
		h.observeSearch(catalog.Name(), "error")
		data["Error"] = "La búsqueda falló, inténtalo de nuevo"
		h.render(c, http.StatusOK, "search_products", data)
		return
	}

	for i := range results {
		results[i].Platform = catalog.Name()
	}
	if len(results) == 0 {
		h.observeSearch(catalog.Name(), "empty")
	} else {
		h.observeSearch(catalog.Name(), "ok")
		if err := h.cache.Put(ctx, results); err != nil {
			h.log(c).Warn("failed to cache search results", zap.Error(err))
		}
	}

	data["Results"] = results
	h.render(c, http.StatusOK, "search_products", data)
}

// ImportProduct grava na loja um produto das últimas buscas, com preço
// calculado pela margem configurada
func (h *Handler) ImportProduct(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	platform := strings.TrimSpace(c.DefaultQuery("platform", defaultPlatform))

	product, err := h.cache.Get(ctx, platform, id)
	if err != nil {
		if !errors.Is(err, cache.ErrNotCached) {
			h.log(c).Error("failed to read search cache",
				zap.String("platform", platform),
				zap.String("product", id),
				zap.Error(err),
			)
		}
		h.observeImport("error")
		h.redirect(c, "/search_products", flashError, "El producto ya no está disponible, vuelve a buscarlo")
		return
	}

	cost, err := scraper.ParsePrice(product.Price)
	if err != nil {
		h.log(c).Warn("product without a usable price", zap.String("product", id), zap.String("price", product.Price))
		h.observeImport("error")
		h.redirect(c, "/search_products", flashError, "El producto no tiene un precio válido")
		return
	}

	status := models.ProductStatusImported
	if platform == defaultPlatform && h.supplier != nil && h.supplier.HasCredentials() {
		if err := h.supplier.ImportProduct(ctx, id); err != nil {
			h.log(c).Error("supplier import failed", zap.String("product", id), zap.Error(err))
			h.observeImport("error")
			h.redirect(c, "/products", flashError, "No se pudo importar el producto en DSers")
			return
		}
		status = models.ProductStatusActive
	}

	settings, err := h.store.LoadSettings(ctx)
	if err != nil {
		h.log(c).Warn("failed to load settings", zap.Error(err))
	}
	margin := models.MarginOrDefault(settings.PriceMargin)

	_, err = h.store.UpsertProduct(ctx, &models.StoreProduct{
		ExternalID: product.ID,
		Name:       product.Name,
		Supplier:   product.Supplier,
		Platform:   platform,
		ImageURL:   product.Image,
		SourceURL:  product.URL,
		Cost:       cost,
		Price:      models.SalePrice(cost, margin),
		Status:     status,
	})
	if err != nil {
		h.log(c).Error("failed to store product", zap.String("product", id), zap.Error(err))
		h.observeImport("error")
		h.redirect(c, "/products", flashError, "No se pudo guardar el producto")
		return
	}

	h.observeImport("ok")
	h.log(c).Info("product imported", zap.String("product", id), zap.String("platform", platform))
	h.redirect(c, "/products", flashSuccess, "Producto importado correctamente")
}

// AnalyzeMarket mostra as tendências de mercado, opcionalmente de uma categoria, e
// as recomendações de produtos
func (h *Handler) AnalyzeMarket(c *gin.Context) {
	category := strings.TrimSpace(c.Query("category"))
	var categories []string
	if category != "" {
		categories = []string{category}
	}
	h.render(c, http.StatusOK, "market_analysis", gin.H{
		"Category":        category,
		"Trends":          h.analyzer.MarketTrends(category),
		"Recommendations": h.analyzer.RecommendProducts(categories, 0),
	})
}

// Orders lista os pedidos espelhados
func (h *Handler) Orders(c *gin.Context) {
	data := gin.H{}
	orders, err := h.store.ListOrders(c.Request.Context())
	if err != nil {
		h.log(c).Error("failed to list orders", zap.Error(err))
		data["Error"] = "No se pudieron cargar los pedidos"
	}
	data["Orders"] = orders
	h.render(c, http.StatusOK, "orders", data)
}

// Settings mostra o formulário de configurações e as tarefas agendadas
func (h *Handler) Settings(c *gin.Context) {
	settings, err := h.store.LoadSettings(c.Request.Context())
	if err != nil {
		h.log(c).Error("failed to load settings", zap.Error(err))
	}
	h.render(c, http.StatusOK, "settings", gin.H{
		"Settings":    settings,
		"HasPassword": settings.DSersPassword != "",
		"Tasks":       h.tasks.ListTasks(),
		"TaskTypes":   scheduler.TaskTypes(),
		"Platforms":   h.catalogs.Platforms(),
	})
}

// SaveSettings substitui as configurações salvas pelo formulário enviado e
// reconecta a conta do fornecedor
func (h *Handler) SaveSettings(c *gin.Context) {
	var form settingsForm
	if err := c.ShouldBind(&form); err != nil {
		h.redirect(c, "/settings", flashError, bindError(err))
		return
	}
	ctx := c.Request.Context()
	settings := form.settings()

	// o campo de senha nunca é devolvido, então em branco ele mantém a
	// senha salva da mesma conta
	if settings.DSersPassword == "" && settings.DSersUsername != "" {
		if previous, err := h.store.LoadSettings(ctx); err == nil && previous.DSersUsername == settings.DSersUsername {
			settings.DSersPassword = previous.DSersPassword
		}
	}

	if err := h.store.SaveSettings(ctx, settings); err != nil {
		h.log(c).Error("failed to save settings", zap.Error(err))
		h.redirect(c, "/settings", flashError, "No se pudo guardar la configuración")
		return
	}
	if h.supplier != nil {
		h.supplier.SetCredentials(settings.DSersUsername, settings.DSersPassword)
	}

	h.log(c).Info("settings saved", zap.Bool("credentials", settings.HasCredentials()))
	h.redirect(c, "/settings", flashSuccess, "Configuración guardada correctamente")
}

// ScheduleTask registra uma nova tarefa de automação
func (h *Handler) ScheduleTask(c *gin.Context) {
	var form scheduleForm
	if err := c.ShouldBind(&form); err != nil {
		h.redirect(c, "/settings", flashError, bindError(err))
		return
	}

	id, err := h.tasks.ScheduleTask(form.TaskType, strings.TrimSpace(form.Frequency), form.params())
	if errors.Is(err, scheduler.ErrInvalidFrequency) {
		h.redirect(c, "/settings", flashError, fmt.Sprintf("Frecuencia no válida: %s", form.Frequency))
		return
	}
	if err != nil {
		h.log(c).Error("failed to schedule task", zap.Error(err))
		h.redirect(c, "/settings", flashError, "No se pudo programar la tarea")
		return
	}
	h.redirect(c, "/settings", flashSuccess, "Tarea programada correctamente con ID: "+id)
}

// CancelTask remove uma tarefa do registro
func (h *Handler) CancelTask(c *gin.Context) {
	id := c.Param("id")
	if err := h.tasks.CancelTask(id); err != nil {
		h.redirect(c, "/settings", flashError, "Tarea no encontrada: "+id)
		return
	}
	h.redirect(c, "/settings", flashSuccess, "Tarea cancelada: "+id)
}

func (h *Handler) observeSearch(platform, outcome string) {
	if h.metrics != nil {
		h.metrics.ObserveSearch(platform, outcome)
	}
}

func (h *Handler) observeImport(outcome string) {
	if h.metrics != nil {
		h.metrics.ObserveImport(outcome)
	}
}
