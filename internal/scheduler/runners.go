package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"dropship-dashboard/internal/models"
	"dropship-dashboard/internal/scraper"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	defaultImportPlatform = "dsers"
	defaultMaxProducts    = 10
	defaultMaxOrders      = 20
)

// ShopStore é a persistência de que os runners embutidos precisam
type ShopStore interface {
	LoadSettings(ctx context.Context) (models.Settings, error)
	ListProducts(ctx context.Context) ([]models.StoreProduct, error)
	UpsertProduct(ctx context.Context, p *models.StoreProduct) (int64, error)
	UpdateProductPrice(ctx context.Context, id int64, price decimal.Decimal) error
	UpsertOrder(ctx context.Context, o *models.Order) (int64, error)
	ListOrdersByStatus(ctx context.Context, status string, limit int) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status string) error
}

// CatalogFinder resolve o nome de uma plataforma em um catálogo
type CatalogFinder interface {
	Find(platform string) (scraper.Catalog, error)
}

// OrderPlatform sincroniza e processa pedidos na plataforma do fornecedor
type OrderPlatform interface {
	GetOrders(ctx context.Context, limit int) ([]models.Order, error)
	ProcessOrder(ctx context.Context, orderID string) error
}

// MarketAnalyzer fornece tendências e recomendações
type MarketAnalyzer interface {
	MarketTrends(category string) []models.Trend
	RecommendProducts(categories []string, budget float64) []models.Recommendation
}

// Deps são as dependências dos runners embutidos
type Deps struct {
	Store    ShopStore
	Catalogs CatalogFinder
	// Orders retorna o cliente da plataforma, ou erro quando não há nenhum configurado
	Orders   func() (OrderPlatform, error)
	Analyzer MarketAnalyzer
	Logger   *zap.Logger
}

// DefaultRunners retorna os runners dos quatro tipos de tarefa embutidos
func DefaultRunners(d Deps) map[string]Runner {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	d.Logger = d.Logger.Named("runner")
	return map[string]Runner{
		models.TaskUpdatePrices:   RunnerFunc(d.updatePrices),
		models.TaskImportProducts: RunnerFunc(d.importProducts),
		models.TaskProcessOrders:  RunnerFunc(d.processOrders),
		models.TaskAnalyzeMarket:  RunnerFunc(d.analyzeMarket),
	}
}

// TaskTypes lista os tipos de tarefa embutidos
func TaskTypes() []string {
	return []string{
		models.TaskUpdatePrices,
		models.TaskImportProducts,
		models.TaskProcessOrders,
		models.TaskAnalyzeMarket,
	}
}

// margin lê params["margin"], depois as configurações salvas, depois o padrão
func (d Deps) margin(ctx context.Context, params map[string]any) decimal.Decimal {
	if s := paramString(params, "margin"); s != "" {
		if m, err := models.ParseMargin(s); err == nil {
			return m
		}
	}
	settings, err := d.Store.LoadSettings(ctx)
	if err != nil {
		d.Logger.Warn("failed to load settings", zap.Error(err))
	}
	return models.MarginOrDefault(settings.PriceMargin)
}

// updatePrices recalcula o preço de venda de cada produto a partir do custo
func (d Deps) updatePrices(ctx context.Context, params map[string]any) (map[string]any, error) {
	margin := d.margin(ctx, params)

	products, err := d.Store.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	updated := 0
	totalIncrease := decimal.Zero
	for _, p := range products {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !p.Cost.IsPositive() {
			continue
		}
		price := models.SalePrice(p.Cost, margin)
		if price.Equal(p.Price) {
			continue
		}
		if err := d.Store.UpdateProductPrice(ctx, p.ID, price); err != nil {
			return nil, fmt.Errorf("update price of product %d: %w", p.ID, err)
		}
		if p.Price.IsPositive() {
			totalIncrease = totalIncrease.Add(price.Sub(p.Price).Div(p.Price).Mul(decimal.NewFromInt(100)))
		}
		updated++
	}

	average := decimal.Zero
	if updated > 0 {
		average = totalIncrease.Div(decimal.NewFromInt(int64(updated)))
	}
	return map[string]any{
		"updated_products": updated,
		"average_increase": average.StringFixed(1) + "%",
		"margin":           margin.String() + "%",
	}, nil
}

// importProducts busca cada palavra-chave e grava até max_products anúncios
func (d Deps) importProducts(ctx context.Context, params map[string]any) (map[string]any, error) {
	keywords := paramStrings(params, "keywords")
	if len(keywords) == 0 {
		return nil, errors.New("no keywords to import")
	}
	platform := paramString(params, "platform")
	if platform == "" {
		platform = defaultImportPlatform
	}
	maxProducts := paramInt(params, "max_products", defaultMaxProducts)

	catalog, err := d.Catalogs.Find(platform)
	if err != nil {
		return nil, err
	}
	margin := d.margin(ctx, params)

	// linhas distintas gravadas nesta execução
	stored := make(map[int64]struct{})
	skipped := 0
	var searched []string
	for _, kw := range keywords {
		if len(stored) >= maxProducts {
			break
		}
		results, err := catalog.Search(ctx, kw, maxProducts-len(stored))
		if err != nil {
			d.Logger.Warn("search failed", zap.String("keyword", kw), zap.Error(err))
			continue
		}
		searched = append(searched, kw)

		for _, r := range results {
			if len(stored) >= maxProducts {
				break
			}
			cost, err := scraper.ParsePrice(r.Price)
			if err != nil {
				skipped++
				continue
			}
			id, err := d.Store.UpsertProduct(ctx, &models.StoreProduct{
				ExternalID: r.ID,
				Name:       r.Name,
				Supplier:   r.Supplier,
				Platform:   catalog.Name(),
				ImageURL:   r.Image,
				SourceURL:  r.URL,
				Cost:       cost,
				Price:      models.SalePrice(cost, margin),
				Status:     models.ProductStatusImported,
			})
			if err != nil {
				return nil, fmt.Errorf("store product %s: %w", r.ID, err)
			}
			stored[id] = struct{}{}
		}
	}

	if searched == nil {
		searched = []string{}
	}
	return map[string]any{
		"imported_products": len(stored),
		"skipped_products":  skipped,
		"categories":        searched,
	}, nil
}

// processOrders sincroniza os pedidos da plataforma, quando configurada, e
// processa os pendentes
func (d Deps) processOrders(ctx context.Context, params map[string]any) (map[string]any, error) {
	maxOrders := paramInt(params, "max_orders", defaultMaxOrders)

	var platform OrderPlatform
	if d.Orders != nil {
		p, err := d.Orders()
		if err != nil {
			d.Logger.Info("no order platform, processing locally", zap.Error(err))
		} else {
			platform = p
		}
	}

	synced := 0
	if platform != nil {
		remote, err := platform.GetOrders(ctx, maxOrders)
		if err != nil {
			d.Logger.Warn("order sync failed", zap.Error(err))
		}
		for i := range remote {
			o := remote[i]
			o.Status = models.OrderStatusPending
			if _, err := d.Store.UpsertOrder(ctx, &o); err != nil {
				return nil, fmt.Errorf("store order %s: %w", o.ExternalID, err)
			}
			synced++
		}
	}

	pending, err := d.Store.ListOrdersByStatus(ctx, models.OrderStatusPending, maxOrders)
	if err != nil {
		return nil, fmt.Errorf("list pending orders: %w", err)
	}

	processed, failed := 0, 0
	for _, o := range pending {
		status := models.OrderStatusProcessed
		if platform != nil {
			if err := platform.ProcessOrder(ctx, o.ExternalID); err != nil {
				d.Logger.Warn("order processing failed", zap.String("order", o.ExternalID), zap.Error(err))
				status = models.OrderStatusFailed
			}
		}
		if err := d.Store.UpdateOrderStatus(ctx, o.ID, status); err != nil {
			return nil, fmt.Errorf("update order %s: %w", o.ExternalID, err)
		}
		if status == models.OrderStatusProcessed {
			processed++
		} else {
			failed++
		}
	}

	return map[string]any{
		"synced_orders":    synced,
		"processed_orders": processed,
		"failed_orders":    failed,
	}, nil
}

// analyzeMarket informa as duas categorias mais populares e o número de
// produtos recomendados
func (d Deps) analyzeMarket(_ context.Context, params map[string]any) (map[string]any, error) {
	trends := d.Analyzer.MarketTrends("")
	sort.SliceStable(trends, func(i, j int) bool {
		return trends[i].PopularityScore > trends[j].PopularityScore
	})
	trending := make([]string, 0, 2)
	for i := 0; i < len(trends) && i < 2; i++ {
		trending = append(trending, trends[i].Category)
	}

	budget := 0.0
	if s := paramString(params, "budget"); s != "" {
		if b, err := strconv.ParseFloat(s, 64); err == nil {
			budget = b
		}
	}
	recs := d.Analyzer.RecommendProducts(paramStrings(params, "categories"), budget)

	result := map[string]any{
		"trending_categories":  trending,
		"recommended_products": len(recs),
	}
	if len(recs) > 0 {
		result["top_recommendation"] = recs[0].Name
	}
	return result, nil
}

func paramString(params map[string]any, key string) string {
	switch v := params[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	}
	return ""
}

func paramInt(params map[string]any, key string, def int) int {
	if n, err := strconv.Atoi(paramString(params, key)); err == nil && n > 0 {
		return n
	}
	return def
}

// paramStrings aceita uma lista ou uma string separada por vírgulas
func paramStrings(params map[string]any, key string) []string {
	var raw []string
	switch v := params[key].(type) {
	case []string:
		raw = v
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				raw = append(raw, s)
			}
		}
	case string:
		raw = strings.Split(v, ",")
	}

	var out []string
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
