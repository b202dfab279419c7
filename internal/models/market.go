package models

// Trend descreve uma categoria de mercado em alta
type Trend struct {
	Category         string   `json:"category"`
	TrendingProducts []string `json:"trending_products"`
	GrowthRate       string   `json:"growth_rate"`
	PopularityScore  float64  `json:"popularity_score"`
}

// Recommendation é um produto candidato a entrar na loja
type Recommendation struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Price        float64 `json:"price"`
	ProfitMargin float64 `json:"profit_margin"`
	Popularity   float64 `json:"popularity"`
}

// Score dá mais peso à popularidade do que à margem
func (r Recommendation) Score() float64 {
	return r.Popularity*0.7 + r.ProfitMargin*0.3
}

// Sentiment é o resultado da análise de sentimento das avaliações
type Sentiment struct {
	Product         string  `json:"product"`
	SentimentScore  float64 `json:"sentiment_score"`
	PositiveReviews int     `json:"positive_reviews"`
	TotalReviews    int     `json:"total_reviews"`
}
