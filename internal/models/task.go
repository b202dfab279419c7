package models

import "time"

// TaskStatus é o estado de uma tarefa agendada
type TaskStatus string

const (
	TaskStatusScheduled TaskStatus = "scheduled"
	TaskStatusRunning   TaskStatus = "running"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusError     TaskStatus = "error"
	TaskStatusCancelled TaskStatus = "cancelled"
)

// Tipos de tarefa
const (
	TaskUpdatePrices   = "update_prices"
	TaskImportProducts = "import_products"
	TaskProcessOrders  = "process_orders"
	TaskAnalyzeMarket  = "analyze_market"
)

// ScheduledTask é um trabalho de automação registrado no agendador
type ScheduledTask struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Frequency  string         `json:"frequency"`
	Params     map[string]any `json:"params"`
	Status     TaskStatus     `json:"status"`
	CreatedAt  time.Time      `json:"created_at"`
	LastRun    *time.Time     `json:"last_run,omitempty"`
	LastResult map[string]any `json:"last_result,omitempty"`
	Error      string         `json:"error,omitempty"`
}

// Clone retorna uma cópia que não compartilha mapas com a original
func (t *ScheduledTask) Clone() *ScheduledTask {
	c := *t
	c.Params = copyMap(t.Params)
	c.LastResult = copyMap(t.LastResult)
	if t.LastRun != nil {
		lr := *t.LastRun
		c.LastRun = &lr
	}
	return &c
}

func copyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
