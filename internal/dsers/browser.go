package dsers

import "context"

// Browser é a parte de um navegador headless de que os scripts do DSers precisam.
// Seletores que começam com "//" são XPath, os demais são CSS.
type Browser interface {
	Navigate(ctx context.Context, url string) error
	// WaitReady espera o elemento existir no DOM
	WaitReady(ctx context.Context, selector string) error
	// WaitVisible espera o elemento ficar visível e clicável
	WaitVisible(ctx context.Context, selector string) error
	SendKeys(ctx context.Context, selector, text string) error
	Click(ctx context.Context, selector string) error
	OuterHTML(ctx context.Context, selector string) (string, error)
	Close() error
}
