package analyzer

import (
	"context"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"dropship-dashboard/internal/models"

	"go.uber.org/zap"
)

const descriptionMaxLength = 150

// Analyzer produz análises de mercado. Sem backend de inferência os
// resultados de sentimento e descrição são simulados.
type Analyzer struct {
	backend Inference
	logger  *zap.Logger

	mu  sync.Mutex
	rnd *rand.Rand
}

// Option configura um Analyzer
type Option func(*Analyzer)

// WithRand define a fonte aleatória dos resultados simulados
func WithRand(r *rand.Rand) Option {
	return func(a *Analyzer) { a.rnd = r }
}

// New cria um analisador. backend pode ser nil.
func New(backend Inference, logger *zap.Logger, opts ...Option) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &Analyzer{
		backend: backend,
		logger:  logger.Named("analyzer"),
		rnd:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AnalyzeSentiment pontua as avaliações de um produto
func (a *Analyzer) AnalyzeSentiment(ctx context.Context, product string, reviews []string) models.Sentiment {
	if a.backend != nil {
		// sem avaliações o modelo não tem o que classificar: resultado neutro
		if len(reviews) == 0 {
			return models.Sentiment{Product: product, SentimentScore: 0.5}
		}
		labels, err := a.backend.Sentiment(ctx, reviews)
		if err == nil {
			positive := 0
			for _, l := range labels {
				if strings.EqualFold(l.Label, "POSITIVE") {
					positive++
				}
			}
			return models.Sentiment{
				Product:         product,
				SentimentScore:  float64(positive) / float64(len(reviews)),
				PositiveReviews: positive,
				TotalReviews:    len(reviews),
			}
		}
		a.logger.Warn("sentiment backend failed, using simulated score", zap.Error(err))
	}

	score := 0.3 + a.randFloat()*0.6
	result := models.Sentiment{Product: product, SentimentScore: score, PositiveReviews: 5, TotalReviews: 10}
	if len(reviews) > 0 {
		result.PositiveReviews = int(float64(len(reviews)) * score)
		result.TotalReviews = len(reviews)
	}
	return result
}

// GenerateDescription escreve uma descrição de venda para um produto
func (a *Analyzer) GenerateDescription(ctx context.Context, product string, keywords []string) string {
	if a.backend != nil {
		prompt := "Este producto " + product + " es perfecto para quienes buscan " + strings.Join(keywords, ", ") + ". "
		text, err := a.backend.Generate(ctx, prompt, descriptionMaxLength)
		if err == nil {
			return text
		}
		a.logger.Warn("text backend failed, using template", zap.Error(err))
	}

	keyword := func(def string) string {
		if len(keywords) > 0 && keywords[0] != "" {
			return keywords[0]
		}
		return def
	}
	templates := []string{
		"Descubre el increíble " + product + ", diseñado para ofrecer la mejor experiencia en " + keyword("uso diario") +
			". Con características premium y materiales de alta calidad, este producto superará tus expectativas.",
		"El " + product + " es la solución perfecta para quienes buscan " + keyword("calidad") +
			". Su diseño innovador y funcionalidad avanzada lo convierten en la opción ideal para uso diario.",
		"Presentamos el " + product + ", la elección preferida por expertos en " + keyword("el sector") +
			". Combina estilo, durabilidad y rendimiento excepcional en un solo producto.",
		"El " + product + " revoluciona la manera en que experimentas " + keyword("la tecnología") +
			". Con su diseño elegante y funcionalidades avanzadas, transformará tu rutina diaria.",
	}
	return templates[a.randIntn(len(templates))]
}

// MarketTrends retorna as tendências de uma categoria, ou todas quando
// category está vazia ou é desconhecida
func (a *Analyzer) MarketTrends(category string) []models.Trend {
	trends := marketTrends()
	if category == "" {
		return trends
	}
	for _, t := range trends {
		if strings.EqualFold(t.Category, category) {
			return []models.Trend{t}
		}
	}
	return trends
}

// RecommendProducts retorna até cinco produtos dentro do orçamento, preferindo
// as categorias informadas. budget <= 0 significa sem limite.
func (a *Analyzer) RecommendProducts(categories []string, budget float64) []models.Recommendation {
	products := catalogRecommendations()

	if budget > 0 {
		affordable := products[:0]
		for _, p := range products {
			if p.Price <= budget {
				affordable = append(affordable, p)
			}
		}
		products = affordable
	}

	if len(categories) > 0 {
		var preferred []models.Recommendation
		for _, p := range products {
			for _, c := range categories {
				if p.Category == c {
					preferred = append(preferred, p)
					break
				}
			}
		}
		if len(preferred) > 0 {
			products = preferred
		}
	}

	sort.SliceStable(products, func(i, j int) bool {
		return products[i].Score() > products[j].Score()
	})
	if len(products) > 5 {
		products = products[:5]
	}
	return products
}

func (a *Analyzer) randFloat() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.rnd.Float64()
}

func (a *Analyzer) randIntn(n int) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.rnd.Intn(n)
}
