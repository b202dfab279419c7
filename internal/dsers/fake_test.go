package dsers

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// fakeBrowser registra as ações e serve páginas prontas por URL
type fakeBrowser struct {
	mu      sync.Mutex
	actions []string
	current string
	pages   map[string]string
	// missing lista seletores que nunca aparecem
	missing map[string]bool
	closed  int
}

func newFakeBrowser() *fakeBrowser {
	return &fakeBrowser{pages: map[string]string{}, missing: map[string]bool{}}
}

func (f *fakeBrowser) record(format string, args ...any) {
	f.actions = append(f.actions, fmt.Sprintf(format, args...))
}

func (f *fakeBrowser) Navigate(_ context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("navigate %s", url)
	f.current = url
	return nil
}

func (f *fakeBrowser) wait(ctx context.Context, selector string) error {
	if f.missing[selector] {
		<-ctx.Done()
		return ctx.Err()
	}
	return nil
}

func (f *fakeBrowser) WaitReady(ctx context.Context, selector string) error {
	f.mu.Lock()
	f.record("ready %s", selector)
	f.mu.Unlock()
	return f.wait(ctx, selector)
}

func (f *fakeBrowser) WaitVisible(ctx context.Context, selector string) error {
	f.mu.Lock()
	f.record("visible %s", selector)
	f.mu.Unlock()
	return f.wait(ctx, selector)
}

func (f *fakeBrowser) SendKeys(_ context.Context, selector, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("keys %s %s", selector, text)
	return nil
}

func (f *fakeBrowser) Click(_ context.Context, selector string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("click %s", selector)
	return nil
}

func (f *fakeBrowser) OuterHTML(_ context.Context, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for prefix, html := range f.pages {
		if strings.HasPrefix(f.current, prefix) {
			return html, nil
		}
	}
	return "<html></html>", nil
}

func (f *fakeBrowser) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed++
	return nil
}

func (f *fakeBrowser) Actions() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.actions...)
}
