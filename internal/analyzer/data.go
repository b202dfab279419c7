package analyzer

import "dropship-dashboard/internal/models"

func marketTrends() []models.Trend {
	return []models.Trend{
		{Category: "Electrónica", TrendingProducts: []string{"Auriculares inalámbricos", "Cargadores rápidos", "Smartwatches"}, GrowthRate: "15%", PopularityScore: 0.85},
		{Category: "Hogar", TrendingProducts: []string{"Organizadores minimalistas", "Luces LED inteligentes", "Difusores de aromas"}, GrowthRate: "12%", PopularityScore: 0.78},
		{Category: "Moda", TrendingProducts: []string{"Ropa deportiva sostenible", "Accesorios minimalistas", "Calzado vegano"}, GrowthRate: "18%", PopularityScore: 0.92},
		{Category: "Belleza", TrendingProducts: []string{"Productos orgánicos", "Herramientas faciales", "Maquillaje vegano"}, GrowthRate: "20%", PopularityScore: 0.88},
		{Category: "Mascotas", TrendingProducts: []string{"Juguetes interactivos", "Alimentos naturales", "Accesorios personalizados"}, GrowthRate: "14%", PopularityScore: 0.75},
	}
}

func catalogRecommendations() []models.Recommendation {
	return []models.Recommendation{
		{ID: "2001", Name: "Auriculares Bluetooth Premium", Category: "Electrónica", Price: 25.99, ProfitMargin: 0.45, Popularity: 0.88},
		{ID: "2002", Name: "Organizador de Cables Magnético", Category: "Hogar", Price: 8.50, ProfitMargin: 0.65, Popularity: 0.72},
		{ID: "2003", Name: "Lámpara LED con Control Remoto", Category: "Hogar", Price: 18.75, ProfitMargin: 0.55, Popularity: 0.81},
		{ID: "2004", Name: "Pulsera Inteligente Deportiva", Category: "Electrónica", Price: 22.50, ProfitMargin: 0.50, Popularity: 0.85},
		{ID: "2005", Name: "Mochila Impermeable USB", Category: "Moda", Price: 29.99, ProfitMargin: 0.60, Popularity: 0.79},
		{ID: "2006", Name: "Set de Cuidado Facial Orgánico", Category: "Belleza", Price: 15.99, ProfitMargin: 0.70, Popularity: 0.83},
		{ID: "2007", Name: "Juguete Interactivo para Mascotas", Category: "Mascotas", Price: 12.50, ProfitMargin: 0.65, Popularity: 0.76},
	}
}
