package bot

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"dropship-dashboard/internal/models"
	"dropship-dashboard/internal/scheduler"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeSender struct {
	mu       sync.Mutex
	sent     []tgbotapi.MessageConfig
	failHTML bool
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	msg := c.(tgbotapi.MessageConfig)
	if f.failHTML && msg.ParseMode == tgbotapi.ModeHTML {
		return tgbotapi.Message{}, errors.New("Bad Request: can't parse entities")
	}
	f.sent = append(f.sent, msg)
	return tgbotapi.Message{}, nil
}

func (f *fakeSender) last() tgbotapi.MessageConfig {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sent[len(f.sent)-1]
}

type fakeTasks struct {
	tasks []*models.ScheduledTask
}

func (f *fakeTasks) ListTasks() []*models.ScheduledTask { return f.tasks }

func (f *fakeTasks) RunNow(id string) (*models.ScheduledTask, error) {
	for _, t := range f.tasks {
		if t.ID == id {
			done := t.Clone()
			done.Status = models.TaskStatusCompleted
			done.LastResult = map[string]any{"updated_products": 2}
			return done, nil
		}
	}
	return nil, scheduler.ErrTaskNotFound
}

type fakeStats struct{}

func (fakeStats) CountProducts(context.Context) (int, error) { return 12, nil }

func (fakeStats) CountOrdersByStatus(context.Context) (map[string]int, error) {
	return map[string]int{"pending": 3, "processed": 7}, nil
}

func message(chatID int64, text string) *tgbotapi.Message {
	return &tgbotapi.Message{Text: text, Chat: &tgbotapi.Chat{ID: chatID}}
}

func TestInit_NoToken(t *testing.T) {
	_, err := Init("", zaptest.NewLogger(t))
	assert.ErrorIs(t, err, ErrNoToken)
}

// telegramServer responde ao getMe com body e aponta Init para ele
func telegramServer(t *testing.T, body string) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/getMe") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	saved := apiEndpoint
	apiEndpoint = srv.URL + "/bot%s/%s"
	t.Cleanup(func() { apiEndpoint = saved })
}

func TestInit_Authorized(t *testing.T) {
	telegramServer(t, `{"ok":true,"result":{"id":42,"is_bot":true,"first_name":"Painel","username":"painel_bot"}}`)

	api, err := Init("123:abc", zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, "painel_bot", api.Self.UserName)
}

func TestInit_InvalidToken(t *testing.T) {
	telegramServer(t, `{"ok":false,"error_code":401,"description":"Unauthorized"}`)

	_, err := Init("123:revoked", zaptest.NewLogger(t))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestInit_OtherAPIError(t *testing.T) {
	telegramServer(t, `{"ok":false,"error_code":500,"description":"Internal Server Error"}`)

	_, err := Init("123:abc", zaptest.NewLogger(t))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidToken)
	assert.Contains(t, err.Error(), "connect to telegram")
}

func TestNotifier_Disabled(t *testing.T) {
	sender := &fakeSender{}
	n := NewNotifier(sender, 0, zaptest.NewLogger(t))
	assert.False(t, n.Enabled())

	n.TaskFinished(context.Background(), &models.ScheduledTask{ID: "x"})
	assert.Empty(t, sender.sent)
	assert.False(t, NewNotifier(nil, 5, nil).Enabled())
}

func TestNotifier_TaskFinished(t *testing.T) {
	sender := &fakeSender{}
	n := NewNotifier(sender, 42, zaptest.NewLogger(t))

	n.TaskFinished(context.Background(), &models.ScheduledTask{
		ID:         "update_prices_20240603091500",
		Status:     models.TaskStatusCompleted,
		LastResult: map[string]any{"updated_products": 3, "average_increase": "5.0%", "timestamp": "x"},
	})

	require.Len(t, sender.sent, 1)
	msg := sender.last()
	assert.Equal(t, int64(42), msg.ChatID)
	assert.Equal(t, tgbotapi.ModeHTML, msg.ParseMode)
	assert.Equal(t, "✅ <b>update_prices_20240603091500</b>\nEstado: completed\naverage_increase: 5.0%\nupdated_products: 3", msg.Text)
}

func TestNotifier_FallsBackToPlainText(t *testing.T) {
	sender := &fakeSender{failHTML: true}
	n := NewNotifier(sender, 42, zaptest.NewLogger(t))

	n.TaskFinished(context.Background(), &models.ScheduledTask{ID: "a", Status: models.TaskStatusError, Error: "<timeout>"})

	require.Len(t, sender.sent, 1)
	assert.Empty(t, sender.last().ParseMode)
	assert.Contains(t, sender.last().Text, "Error: &lt;timeout&gt;")
}

func TestCommands(t *testing.T) {
	lastRun := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	tasks := &fakeTasks{tasks: []*models.ScheduledTask{
		{ID: "update_prices_1", Frequency: "hourly", Status: models.TaskStatusScheduled, LastRun: &lastRun},
	}}
	sender := &fakeSender{}
	c := NewCommands(sender, 42, tasks, fakeStats{}, zaptest.NewLogger(t))
	ctx := context.Background()

	c.Handle(ctx, message(42, "/tasks@dropship_bot"))
	assert.Contains(t, sender.last().Text, "<code>update_prices_1</code>")
	assert.Contains(t, sender.last().Text, "última: 2024-06-03 09:00")

	c.Handle(ctx, message(42, "/run update_prices_1"))
	assert.Contains(t, sender.last().Text, "updated_products: 2")

	c.Handle(ctx, message(42, "/run missing"))
	assert.Equal(t, "❌ Tarea no encontrada.", sender.last().Text)

	c.Handle(ctx, message(42, "/resumen"))
	assert.Equal(t, "📦 Productos: 12\n🧾 Pedidos:\n  pending: 3\n  processed: 7", sender.last().Text)

	c.Handle(ctx, message(42, "/foo"))
	assert.Contains(t, sender.last().Text, "Comando no reconocido")
}

func TestCommands_Authorization(t *testing.T) {
	sender := &fakeSender{}
	c := NewCommands(sender, 42, &fakeTasks{}, fakeStats{}, zaptest.NewLogger(t))

	c.Handle(context.Background(), message(7, "/tasks"))
	assert.Equal(t, "No estás autorizado a usar este bot.", sender.last().Text)

	c.Handle(context.Background(), message(7, "/help"))
	assert.Contains(t, sender.last().Text, "Dashboard de Dropshipping")
}

func TestCommands_Listen(t *testing.T) {
	sender := &fakeSender{}
	c := NewCommands(sender, 0, &fakeTasks{}, fakeStats{}, zaptest.NewLogger(t))

	updates := make(chan tgbotapi.Update, 2)
	updates <- tgbotapi.Update{Message: message(1, "/tasks")}
	updates <- tgbotapi.Update{}
	close(updates)

	c.Listen(context.Background(), updates)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "No hay tareas programadas.", sender.last().Text)
}
