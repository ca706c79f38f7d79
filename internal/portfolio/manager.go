// Package portfolio tracks named sets of holdings across sessions, persisted
// to a JSON state file so they survive restarts.
package portfolio

import (
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"MarketLens/internal/model"
)

// Manager handles portfolio CRUD with concurrency safety.
type Manager struct {
	mu         sync.Mutex
	portfolios map[string]*model.Portfolio
	filePath   string
}

// NewManager creates a Manager, loading existing state from disk.
func NewManager(filePath string) (*Manager, error) {
	state, err := LoadState(filePath)
	if err != nil {
		return nil, fmt.Errorf("load portfolio state: %w", err)
	}
	return &Manager{portfolios: state, filePath: filePath}, nil
}

// Save creates or replaces the portfolio under name. The ID and creation
// date of an existing portfolio are preserved.
func (m *Manager) Save(name string, holdings map[string]model.Holding) (*model.Portfolio, error) {
	if name == "" {
		return nil, fmt.Errorf("portfolio name is required")
	}
	if len(holdings) == 0 {
		return nil, fmt.Errorf("portfolio needs at least one holding")
	}
	for symbol, h := range holdings {
		if h.Shares <= 0 || h.PurchasePrice <= 0 {
			return nil, fmt.Errorf("holding %s: shares and purchase price must be positive", symbol)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	p, ok := m.portfolios[name]
	if !ok {
		p = &model.Portfolio{
			ID:        uuid.NewString(),
			Name:      name,
			CreatedAt: now,
		}
		m.portfolios[name] = p
	}
	p.Holdings = holdings
	p.UpdatedAt = now

	if err := m.save(); err != nil {
		return nil, err
	}
	return clone(p), nil
}

// Get returns the portfolio under name, or false.
func (m *Manager) Get(name string) (*model.Portfolio, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.portfolios[name]
	if !ok {
		return nil, false
	}
	return clone(p), true
}

// List returns all portfolios sorted by name.
func (m *Manager) List() []*model.Portfolio {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*model.Portfolio, 0, len(m.portfolios))
	for _, p := range m.portfolios {
		out = append(out, clone(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Delete removes the portfolio under name, reporting whether it existed.
func (m *Manager) Delete(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.portfolios[name]; !ok {
		return false
	}
	delete(m.portfolios, name)
	if err := m.save(); err != nil {
		log.Printf("[ERROR] save portfolio state after delete: %v", err)
	}
	return true
}

func (m *Manager) save() error {
	return SaveState(m.filePath, m.portfolios)
}

func clone(p *model.Portfolio) *model.Portfolio {
	cp := *p
	cp.Holdings = make(map[string]model.Holding, len(p.Holdings))
	for k, v := range p.Holdings {
		cp.Holdings[k] = v
	}
	return &cp
}
