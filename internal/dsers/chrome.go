package dsers

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// ChromeConfig configura o navegador chromedp
type ChromeConfig struct {
	// RemoteURL é o websocket DevTools de um Chrome já rodando. Vazio inicia um local.
	RemoteURL string
	// NoSandbox é necessário ao rodar como root em um container
	NoSandbox bool
	// AcceptLanguage é enviado em toda requisição
	AcceptLanguage string
	Logger         *zap.Logger
}

// ChromeBrowser controla uma única aba do Chrome headless
type ChromeBrowser struct {
	config ChromeConfig
	logger *zap.Logger

	allocCancel context.CancelFunc
	ctx         context.Context
	cancel      context.CancelFunc

	startOnce sync.Once
	startErr  error
}

// NewChromeBrowser prepara um navegador. O Chrome sobe na primeira ação.
func NewChromeBrowser(config ChromeConfig) *ChromeBrowser {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.AcceptLanguage == "" {
		config.AcceptLanguage = "es-ES,es;q=0.9,en;q=0.8"
	}

	b := &ChromeBrowser{config: config, logger: logger.Named("chrome")}

	var allocCtx context.Context
	if config.RemoteURL != "" {
		allocCtx, b.allocCancel = chromedp.NewRemoteAllocator(context.Background(), config.RemoteURL)
	} else {
		opts := append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-first-run", true),
			chromedp.Flag("disable-extensions", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)
		if config.NoSandbox {
			opts = append(opts, chromedp.Flag("no-sandbox", true))
		}
		allocCtx, b.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
	}

	b.ctx, b.cancel = chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(format string, args ...interface{}) {
			b.logger.Debug(fmt.Sprintf(format, args...))
		}),
	)
	return b
}

// start aloca o navegador no contexto de longa duração, para que o timeout
// de um passo nunca derrube a aba
func (b *ChromeBrowser) start() error {
	b.startOnce.Do(func() {
		headers := network.Headers{"Accept-Language": b.config.AcceptLanguage}
		b.startErr = chromedp.Run(b.ctx,
			network.Enable(),
			network.SetExtraHTTPHeaders(headers),
		)
		if b.startErr == nil {
			b.logger.Info("browser started", zap.Bool("remote", b.config.RemoteURL != ""))
		}
	})
	return b.startErr
}

// run executa ações na aba, limitado por ctx
func (b *ChromeBrowser) run(ctx context.Context, actions ...chromedp.Action) error {
	if err := b.start(); err != nil {
		return fmt.Errorf("start browser: %w", err)
	}

	runCtx, cancel := context.WithCancel(b.ctx)
	defer cancel()
	if deadline, ok := ctx.Deadline(); ok {
		var cancelDeadline context.CancelFunc
		runCtx, cancelDeadline = context.WithDeadline(runCtx, deadline)
		defer cancelDeadline()
	}
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	return chromedp.Run(runCtx, actions...)
}

func queryOption(selector string) chromedp.QueryOption {
	if strings.HasPrefix(selector, "//") {
		return chromedp.BySearch
	}
	return chromedp.ByQuery
}

func (b *ChromeBrowser) Navigate(ctx context.Context, url string) error {
	return b.run(ctx, chromedp.Navigate(url))
}

func (b *ChromeBrowser) WaitReady(ctx context.Context, selector string) error {
	return b.run(ctx, chromedp.WaitReady(selector, queryOption(selector)))
}

func (b *ChromeBrowser) WaitVisible(ctx context.Context, selector string) error {
	return b.run(ctx,
		chromedp.WaitVisible(selector, queryOption(selector)),
		chromedp.WaitEnabled(selector, queryOption(selector)),
	)
}

func (b *ChromeBrowser) SendKeys(ctx context.Context, selector, text string) error {
	return b.run(ctx, chromedp.SendKeys(selector, text, queryOption(selector)))
}

func (b *ChromeBrowser) Click(ctx context.Context, selector string) error {
	return b.run(ctx, chromedp.Click(selector, queryOption(selector)))
}

func (b *ChromeBrowser) OuterHTML(ctx context.Context, selector string) (string, error) {
	var html string
	err := b.run(ctx, chromedp.OuterHTML(selector, &html, queryOption(selector)))
	return html, err
}

// Close fecha a aba e o processo do navegador
func (b *ChromeBrowser) Close() error {
	b.cancel()
	b.allocCancel()
	return nil
}
