package bot

import (
	"context"
	"fmt"
	"html"
	"sort"
	"strings"

	"dropship-dashboard/internal/models"

	"go.uber.org/zap"
)

// Notifier envia uma mensagem a um chat sempre que uma tarefa agendada termina
type Notifier struct {
	sender Sender
	chatID int64
	logger *zap.Logger
}

// NewNotifier cria um notificador. Ele fica em silêncio quando sender é nil ou chatID é 0.
func NewNotifier(sender Sender, chatID int64, logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{sender: sender, chatID: chatID, logger: logger.Named("notifier")}
}

// Enabled informa se as mensagens serão enviadas
func (n *Notifier) Enabled() bool {
	return n.sender != nil && n.chatID != 0
}

// TaskFinished envia o resultado de uma execução
func (n *Notifier) TaskFinished(_ context.Context, t *models.ScheduledTask) {
	if !n.Enabled() {
		return
	}
	if err := sendHTML(n.sender, n.chatID, formatTask(t)); err != nil {
		n.logger.Warn("failed to send task notification", zap.String("task", t.ID), zap.Error(err))
		return
	}
	n.logger.Debug("task notification sent", zap.String("task", t.ID))
}

func formatTask(t *models.ScheduledTask) string {
	var b strings.Builder
	icon := "✅"
	if t.Status != models.TaskStatusCompleted {
		icon = "❌"
	}
	fmt.Fprintf(&b, "%s <b>%s</b>\n", icon, html.EscapeString(t.ID))
	fmt.Fprintf(&b, "Estado: %s\n", t.Status)
	if t.Error != "" {
		fmt.Fprintf(&b, "Error: %s\n", html.EscapeString(t.Error))
	}

	keys := make([]string, 0, len(t.LastResult))
	for k := range t.LastResult {
		if k != "timestamp" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "%s: %s\n", html.EscapeString(k), html.EscapeString(fmt.Sprint(t.LastResult[k])))
	}
	return strings.TrimRight(b.String(), "\n")
}
