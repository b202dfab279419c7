package bot

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// ErrNoToken é retornado por Init quando não há token configurado
var ErrNoToken = errors.New("TELEGRAM_BOT_TOKEN is not set")

// ErrInvalidToken é retornado quando o Telegram recusa o token
var ErrInvalidToken = errors.New("telegram token is invalid or expired, ask @BotFather for a new one")

// o long polling espera até 60s por atualizações
const clientTimeout = 90 * time.Second

var apiEndpoint = tgbotapi.APIEndpoint

// Sender envia uma mensagem pela API do Telegram
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Init autentica o bot no Telegram
func Init(token string, logger *zap.Logger) (*tgbotapi.BotAPI, error) {
	if token == "" {
		return nil, ErrNoToken
	}

	api, err := tgbotapi.NewBotAPIWithClient(token, apiEndpoint, &http.Client{Timeout: clientTimeout})
	var apiErr *tgbotapi.Error
	switch {
	case errors.As(err, &apiErr) && apiErr.Code == http.StatusUnauthorized:
		return nil, ErrInvalidToken
	case err != nil:
		return nil, fmt.Errorf("connect to telegram: %w", err)
	}

	logger.Info("telegram bot authorized", zap.String("username", api.Self.UserName))
	return api, nil
}

// sendHTML envia o texto como HTML e repete como texto puro quando o Telegram
// rejeita a marcação
func sendHTML(sender Sender, chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := sender.Send(msg); err != nil {
		msg.ParseMode = ""
		if _, err := sender.Send(msg); err != nil {
			return err
		}
	}
	return nil
}
