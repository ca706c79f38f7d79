package store

// NoopStore is a no-op implementation used when SQLite is not configured.
type NoopStore struct{}

func NewNoopStore() *NoopStore { return &NoopStore{} }

func (n *NoopStore) RecordSearch(_ string) error                           { return nil }
func (n *NoopStore) RecentSearches(_ int) ([]string, error)                { return nil, nil }
func (n *NoopStore) ClearSearches() error                                  { return nil }
func (n *NoopStore) RecordQuote(_ *QuoteSnapshot) error                    { return nil }
func (n *NoopStore) RecentQuotes(_ string, _ int) ([]QuoteSnapshot, error) { return nil, nil }
func (n *NoopStore) RecordValuation(_ *PortfolioValuation) error           { return nil }
func (n *NoopStore) Close() error                                          { return nil }
