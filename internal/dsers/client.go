package dsers

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"dropship-dashboard/internal/models"
	"dropship-dashboard/internal/scraper"

	"go.uber.org/zap"
)

const (
	defaultBaseURL       = "https://www.dsers.com"
	defaultStepTimeout   = 10 * time.Second
	defaultSearchTimeout = 15 * time.Second
)

// Options configura um Client
type Options struct {
	BaseURL       string
	Username      string
	Password      string
	StepTimeout   time.Duration
	SearchTimeout time.Duration
}

// Client executa os fluxos do DSers em um Browser.
// As chamadas são serializadas: o navegador tem uma única aba.
type Client struct {
	mu       sync.Mutex
	browser  Browser
	opts     Options
	loggedIn bool
	logger   *zap.Logger
}

// NewClient cria um cliente que controla browser
func NewClient(browser Browser, opts Options, logger *zap.Logger) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	if opts.StepTimeout <= 0 {
		opts.StepTimeout = defaultStepTimeout
	}
	if opts.SearchTimeout <= 0 {
		opts.SearchTimeout = defaultSearchTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{browser: browser, opts: opts, logger: logger.Named("dsers")}
}

// Login entra com as credenciais configuradas
func (c *Client) Login(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.login(ctx)
}

func (c *Client) login(ctx context.Context) error {
	if c.opts.Username == "" || c.opts.Password == "" {
		return ErrMissingCredentials
	}

	err := c.step(ctx, "login", c.opts.StepTimeout, func(ctx context.Context) error {
		if err := c.browser.Navigate(ctx, c.opts.BaseURL+"/login"); err != nil {
			return err
		}
		if err := c.browser.WaitReady(ctx, "#username"); err != nil {
			return err
		}
		if err := c.browser.SendKeys(ctx, "#username", c.opts.Username); err != nil {
			return err
		}
		if err := c.browser.SendKeys(ctx, "#password", c.opts.Password); err != nil {
			return err
		}
		return c.browser.Click(ctx, "//button[@type='submit']")
	})
	if err != nil {
		return err
	}

	if err := c.step(ctx, "login confirmation", c.opts.StepTimeout, func(ctx context.Context) error {
		return c.browser.WaitReady(ctx, ".dashboard")
	}); err != nil {
		return err
	}

	c.loggedIn = true
	c.logger.Info("logged in", zap.String("username", c.opts.Username))
	return nil
}

func (c *Client) ensureLoggedIn(ctx context.Context) error {
	if c.loggedIn {
		return nil
	}
	return c.login(ctx)
}

// SearchProducts busca no catálogo do fornecedor
func (c *Client) SearchProducts(ctx context.Context, keyword string, max int) ([]models.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureLoggedIn(ctx); err != nil {
		return nil, err
	}

	var html string
	err := c.step(ctx, "search", c.opts.SearchTimeout, func(ctx context.Context) error {
		target := c.opts.BaseURL + "/product/search?keyword=" + url.QueryEscape(keyword)
		if err := c.browser.Navigate(ctx, target); err != nil {
			return err
		}
		if err := c.browser.WaitReady(ctx, ".product-item"); err != nil {
			return err
		}
		var err error
		html, err = c.browser.OuterHTML(ctx, "html")
		return err
	})
	if err != nil {
		return nil, err
	}

	products, skipped, err := scraper.ParseProducts(html, max)
	if err != nil {
		return nil, fmt.Errorf("parse search results: %w", err)
	}
	c.logSkipped("product", skipped)
	return products, nil
}

// ImportProduct importa um produto do fornecedor para a loja
func (c *Client) ImportProduct(ctx context.Context, productID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureLoggedIn(ctx); err != nil {
		return err
	}
	return c.clickAndConfirm(ctx, "import", "/product/detail/"+url.PathEscape(productID), "#import-button")
}

// GetOrders lista os pedidos mais recentes
func (c *Client) GetOrders(ctx context.Context, limit int) ([]models.Order, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureLoggedIn(ctx); err != nil {
		return nil, err
	}

	var html string
	err := c.step(ctx, "orders", c.opts.StepTimeout, func(ctx context.Context) error {
		if err := c.browser.Navigate(ctx, c.opts.BaseURL+"/orders"); err != nil {
			return err
		}
		if err := c.browser.WaitReady(ctx, ".order-item"); err != nil {
			return err
		}
		var err error
		html, err = c.browser.OuterHTML(ctx, "html")
		return err
	})
	if err != nil {
		return nil, err
	}

	orders, skipped, err := scraper.ParseOrders(html, limit)
	if err != nil {
		return nil, fmt.Errorf("parse orders: %w", err)
	}
	c.logSkipped("order", skipped)
	return orders, nil
}

// ProcessOrder faz o pedido do cliente no fornecedor
func (c *Client) ProcessOrder(ctx context.Context, orderID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureLoggedIn(ctx); err != nil {
		return err
	}
	return c.clickAndConfirm(ctx, "process order", "/orders/detail/"+url.PathEscape(orderID), "#process-button")
}

// Close encerra o navegador. Depois disso o cliente precisa entrar de novo.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loggedIn = false
	return c.browser.Close()
}

func (c *Client) clickAndConfirm(ctx context.Context, name, path, button string) error {
	err := c.step(ctx, name, c.opts.StepTimeout, func(ctx context.Context) error {
		if err := c.browser.Navigate(ctx, c.opts.BaseURL+path); err != nil {
			return err
		}
		if err := c.browser.WaitVisible(ctx, button); err != nil {
			return err
		}
		return c.browser.Click(ctx, button)
	})
	if err != nil {
		return err
	}
	return c.step(ctx, name+" confirmation", c.opts.StepTimeout, func(ctx context.Context) error {
		return c.browser.WaitReady(ctx, ".success-message")
	})
}

// step roda fn com timeout próprio e embrulha a falha em ErrStepFailed
func (c *Client) step(ctx context.Context, name string, timeout time.Duration, fn func(context.Context) error) error {
	stepCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := fn(stepCtx); err != nil {
		c.logger.Warn("step failed", zap.String("step", name), zap.Error(err))
		return fmt.Errorf("%w: %s: %v", ErrStepFailed, name, err)
	}
	return nil
}

func (c *Client) logSkipped(kind string, skipped []scraper.Skipped) {
	for _, s := range skipped {
		c.logger.Warn("skipped malformed "+kind,
			zap.Int("index", s.Index),
			zap.String("reason", s.Reason),
		)
	}
}
