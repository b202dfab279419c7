package handlers

import (
	"encoding/gob"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const sessionName = "dashboard-session"

func init() {
	gob.Register(FlashMessage{})
}

// FlashMessage é um aviso exibido uma única vez na próxima página
type FlashMessage struct {
	Type    string
	Message string
}

// NewSessionStore retorna o cookie store usado pelas mensagens flash
func NewSessionStore(key []byte, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore(key)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// GetFlash retira as mensagens flash guardadas na sessão
func GetFlash(session *sessions.Session) []FlashMessage {
	var messages []FlashMessage
	for _, f := range session.Flashes() {
		if fm, ok := f.(FlashMessage); ok {
			messages = append(messages, fm)
		}
	}
	return messages
}

func (h *Handler) session(c *gin.Context) *sessions.Session {
	// um cookie adulterado ou antigo gera uma sessão nova
	session, _ := h.sessions.Get(c.Request, sessionName)
	return session
}

// flash guarda uma mensagem para a próxima página
func (h *Handler) flash(c *gin.Context, kind, message string) {
	session := h.session(c)
	session.AddFlash(FlashMessage{Type: kind, Message: message})
	if err := session.Save(c.Request, c.Writer); err != nil {
		h.log(c).Warn("failed to save session", zap.Error(err))
	}
}

// flashes retira as mensagens pendentes; a sessão é salva para limpá-las
func (h *Handler) flashes(c *gin.Context) []FlashMessage {
	session := h.session(c)
	messages := GetFlash(session)
	if len(messages) > 0 {
		_ = session.Save(c.Request, c.Writer)
	}
	return messages
}
