package bot

import (
	"context"
	"errors"
	"fmt"
	"html"
	"sort"
	"strings"

	"dropship-dashboard/internal/models"
	"dropship-dashboard/internal/scheduler"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// TaskService é a parte do agendador que o bot expõe
type TaskService interface {
	ListTasks() []*models.ScheduledTask
	RunNow(id string) (*models.ScheduledTask, error)
}

// Stats fornece os contadores da loja para /resumen
type Stats interface {
	CountProducts(ctx context.Context) (int, error)
	CountOrdersByStatus(ctx context.Context) (map[string]int, error)
}

// Commands responde aos comandos do chat autorizado
type Commands struct {
	sender Sender
	chatID int64
	tasks  TaskService
	stats  Stats
	logger *zap.Logger
}

// NewCommands cria o tratador de comandos. chatID 0 aceita qualquer chat.
func NewCommands(sender Sender, chatID int64, tasks TaskService, stats Stats, logger *zap.Logger) *Commands {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Commands{sender: sender, chatID: chatID, tasks: tasks, stats: stats, logger: logger.Named("commands")}
}

// Listen trata as atualizações até ctx terminar ou o canal fechar
func (c *Commands) Listen(ctx context.Context, updates <-chan tgbotapi.Update) {
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message != nil {
				c.Handle(ctx, update.Message)
			}
		}
	}
}

// Handle responde a uma mensagem
func (c *Commands) Handle(ctx context.Context, message *tgbotapi.Message) {
	parts := strings.Fields(message.Text)
	if len(parts) == 0 {
		return
	}

	command := strings.ToLower(parts[0])
	if idx := strings.Index(command, "@"); idx > 0 {
		command = command[:idx]
	}

	chatID := message.Chat.ID
	isPublic := command == "/start" || command == "/help"
	if !isPublic && c.chatID != 0 && chatID != c.chatID {
		c.reply(chatID, "No estás autorizado a usar este bot.")
		return
	}

	switch command {
	case "/start", "/help":
		c.reply(chatID, helpText)
	case "/tasks":
		c.reply(chatID, c.listTasks())
	case "/run":
		if len(parts) < 2 {
			c.reply(chatID, "Uso: /run &lt;id_tarea&gt;")
			return
		}
		c.reply(chatID, c.runTask(parts[1]))
	case "/resumen":
		c.reply(chatID, c.summary(ctx))
	default:
		c.reply(chatID, "Comando no reconocido. Usa /help para ver los comandos disponibles.")
	}
}

const helpText = `🤖 <b>Dashboard de Dropshipping</b>

<b>/tasks</b> - Listar las tareas programadas
<b>/run &lt;id&gt;</b> - Ejecutar una tarea ahora
<b>/resumen</b> - Productos y pedidos por estado
<b>/help</b> - Mostrar esta ayuda`

func (c *Commands) listTasks() string {
	tasks := c.tasks.ListTasks()
	if len(tasks) == 0 {
		return "No hay tareas programadas."
	}
	var b strings.Builder
	b.WriteString("📋 <b>Tareas programadas</b>\n")
	for _, t := range tasks {
		fmt.Fprintf(&b, "\n<code>%s</code>\n%s · %s", html.EscapeString(t.ID), html.EscapeString(t.Frequency), t.Status)
		if t.LastRun != nil {
			fmt.Fprintf(&b, " · última: %s", t.LastRun.Format("2006-01-02 15:04"))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (c *Commands) runTask(id string) string {
	task, err := c.tasks.RunNow(id)
	if err != nil {
		c.logger.Warn("run from chat failed", zap.String("task", id), zap.Error(err))
		if errors.Is(err, scheduler.ErrTaskNotFound) {
			return "❌ Tarea no encontrada."
		}
		return "❌ No se pudo ejecutar la tarea."
	}
	return formatTask(task)
}

func (c *Commands) summary(ctx context.Context) string {
	products, err := c.stats.CountProducts(ctx)
	if err != nil {
		c.logger.Error("failed to count products", zap.Error(err))
		return "❌ Error al leer la base de datos."
	}
	orders, err := c.stats.CountOrdersByStatus(ctx)
	if err != nil {
		c.logger.Error("failed to count orders", zap.Error(err))
		return "❌ Error al leer la base de datos."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📦 Productos: %d\n🧾 Pedidos:", products)
	if len(orders) == 0 {
		b.WriteString(" 0")
	}
	statuses := make([]string, 0, len(orders))
	for s := range orders {
		statuses = append(statuses, s)
	}
	sort.Strings(statuses)
	for _, s := range statuses {
		fmt.Fprintf(&b, "\n  %s: %d", html.EscapeString(s), orders[s])
	}
	return b.String()
}

func (c *Commands) reply(chatID int64, text string) {
	if err := sendHTML(c.sender, chatID, text); err != nil {
		c.logger.Warn("failed to send reply", zap.Int64("chat", chatID), zap.Error(err))
	}
}
