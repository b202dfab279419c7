package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"dropship-dashboard/internal/scheduler"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type productResponse struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Cost     float64 `json:"cost"`
	Platform string  `json:"platform"`
	Status   string  `json:"status"`
}

// APIProducts retorna os produtos importados em JSON
func (h *Handler) APIProducts(c *gin.Context) {
	products, err := h.store.ListProducts(c.Request.Context())
	if err != nil {
		h.log(c).Error("failed to list products", zap.Error(err))
		h.jsonError(c, http.StatusInternalServerError, "failed to list products")
		return
	}

	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, productResponse{
			ID:       p.ID,
			Name:     p.Name,
			Price:    p.Price.InexactFloat64(),
			Cost:     p.Cost.InexactFloat64(),
			Platform: p.Platform,
			Status:   p.Status,
		})
	}
	c.JSON(http.StatusOK, out)
}

// APITasks retorna o registro de tarefas
func (h *Handler) APITasks(c *gin.Context) {
	c.JSON(http.StatusOK, h.tasks.ListTasks())
}

// APITask retorna uma tarefa
func (h *Handler) APITask(c *gin.Context) {
	task, err := h.tasks.GetTask(c.Param("id"))
	if errors.Is(err, scheduler.ErrTaskNotFound) {
		h.jsonError(c, http.StatusNotFound, "task not found")
		return
	}
	if err != nil {
		h.jsonError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, task)
}

// APIRecommendations retorna os produtos recomendados, filtrados pelos parâmetros
// opcionais budget e category (repetível)
func (h *Handler) APIRecommendations(c *gin.Context) {
	budget := 0.0
	if s := c.Query("budget"); s != "" {
		b, err := strconv.ParseFloat(s, 64)
		if err != nil || b < 0 {
			h.jsonError(c, http.StatusBadRequest, "budget must be a non-negative number")
			return
		}
		budget = b
	}
	c.JSON(http.StatusOK, h.analyzer.RecommendProducts(c.QueryArray("category"), budget))
}

// APIDescribe gera a descrição de um produto
func (h *Handler) APIDescribe(c *gin.Context) {
	var req describeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.jsonError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"product":     req.Product,
		"description": h.analyzer.GenerateDescription(c.Request.Context(), req.Product, req.Keywords),
	})
}

// APISentiment pontua as avaliações de um produto
func (h *Handler) APISentiment(c *gin.Context) {
	var req sentimentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.jsonError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, h.analyzer.AnalyzeSentiment(c.Request.Context(), req.Product, req.Reviews))
}

// Health é a verificação de vida do serviço
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
