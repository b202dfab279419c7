package dsers

import (
	"context"
	"errors"
	"sync"

	"dropship-dashboard/internal/models"
	"dropship-dashboard/internal/scraper"

	"go.uber.org/zap"
)

// Platform é o nome de catálogo da integração com o DSers
const Platform = "dsers"

// BrowserFactory cria um navegador novo para um novo cliente
type BrowserFactory func() Browser

// Manager guarda as credenciais atuais e no máximo um Client ativo
type Manager struct {
	mu         sync.Mutex
	newBrowser BrowserFactory
	opts       Options
	client     *Client
	logger     *zap.Logger
}

// NewManager cria um manager. opts.Username e opts.Password são as credenciais iniciais.
func NewManager(newBrowser BrowserFactory, opts Options, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{newBrowser: newBrowser, opts: opts, logger: logger}
}

// SetCredentials troca as credenciais e fecha o cliente quando elas mudam
func (m *Manager) SetCredentials(username, password string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if username == m.opts.Username && password == m.opts.Password {
		return
	}
	m.opts.Username = username
	m.opts.Password = password
	m.closeClient()
	m.logger.Info("dsers credentials updated", zap.Bool("configured", m.hasCredentials()))
}

// HasCredentials informa se usuário e senha estão definidos
func (m *Manager) HasCredentials() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hasCredentials()
}

func (m *Manager) hasCredentials() bool {
	return m.opts.Username != "" && m.opts.Password != ""
}

// Client retorna o cliente ativo, criando-o no primeiro uso
func (m *Manager) Client() (*Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.hasCredentials() {
		return nil, ErrMissingCredentials
	}
	if m.client == nil {
		m.client = NewClient(m.newBrowser(), m.opts, m.logger)
	}
	return m.client, nil
}

// ImportProduct importa um produto do fornecedor para a loja conectada
func (m *Manager) ImportProduct(ctx context.Context, productID string) error {
	client, err := m.Client()
	if err != nil {
		return err
	}
	return client.ImportProduct(ctx, productID)
}

// Close encerra o cliente ativo, se houver
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closeClient()
}

func (m *Manager) closeClient() error {
	if m.client == nil {
		return nil
	}
	err := m.client.Close()
	m.client = nil
	if err != nil {
		m.logger.Warn("failed to close dsers client", zap.Error(err))
	}
	return err
}

// Catalog expõe o manager como scraper.Catalog
func (m *Manager) Catalog() scraper.Catalog {
	return &catalog{manager: m, fallback: scraper.NewSampleCatalog(Platform)}
}

type catalog struct {
	manager  *Manager
	fallback *scraper.SampleCatalog
}

func (c *catalog) Name() string {
	return Platform
}

// Search usa o cliente ativo, ou a lista de amostra quando não há conta configurada
func (c *catalog) Search(ctx context.Context, keyword string, max int) ([]models.Product, error) {
	client, err := c.manager.Client()
	if errors.Is(err, ErrMissingCredentials) {
		return c.fallback.Search(ctx, keyword, max)
	}
	if err != nil {
		return nil, err
	}
	return client.SearchProducts(ctx, keyword, max)
}
