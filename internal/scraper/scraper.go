package scraper

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"dropship-dashboard/internal/models"
)

// ErrUnknownPlatform é retornado quando não há catálogo registrado para a plataforma
var ErrUnknownPlatform = errors.New("unknown platform")

// Catalog busca produtos em uma plataforma de fornecedor
type Catalog interface {
	Name() string
	Search(ctx context.Context, keyword string, max int) ([]models.Product, error)
}

// Registry mantém os catálogos disponíveis pelo nome da plataforma
type Registry struct {
	mu       sync.RWMutex
	catalogs map[string]Catalog
}

// NewRegistry cria um registry com os catálogos informados
func NewRegistry(catalogs ...Catalog) *Registry {
	r := &Registry{catalogs: make(map[string]Catalog)}
	for _, c := range catalogs {
		r.Register(c)
	}
	return r
}

// Register adiciona ou substitui o catálogo de c.Name()
func (r *Registry) Register(c Catalog) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.catalogs[strings.ToLower(c.Name())] = c
}

// Find retorna o catálogo de uma plataforma
func (r *Registry) Find(platform string) (Catalog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.catalogs[strings.ToLower(platform)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlatform, platform)
	}
	return c, nil
}

// Platforms lista em ordem os nomes das plataformas registradas
func (r *Registry) Platforms() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.catalogs))
	for name := range r.catalogs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
