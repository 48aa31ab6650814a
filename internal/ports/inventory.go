package ports

import "lcatrace/internal/domain"

// GraphAccessor provides read access to the supply chain graph
type GraphAccessor interface {
	// Activity returns the activity for a key. Returns an error wrapping
	// application.ErrNotFound when the key is unknown.
	Activity(key domain.Key) (*domain.Activity, error)

	// Exchanges returns the exchanges whose output is the activity, in
	// storage order. Order is significant and must be preserved.
	Exchanges(key domain.Key) ([]domain.Exchange, error)
}

// Inventory is a GraphAccessor that can also enumerate its contents and
// characterization factors (needed by the matrix solver and listings)
type Inventory interface {
	GraphAccessor

	// Activities returns every activity, ordered by key
	Activities() ([]domain.Activity, error)

	// Search returns activities whose name, location or key match the query
	Search(query string) ([]domain.Activity, error)

	// Methods returns the registered impact assessment methods
	Methods() ([]domain.Method, error)

	// CharacterizationFactors maps elementary flows to their factor for a method
	CharacterizationFactors(method domain.Method) (map[domain.Key]float64, error)
}

// GraphWriter loads inventory data. Writes become visible on Commit.
type GraphWriter interface {
	UpsertActivity(activity *domain.Activity) error
	// ReplaceExchanges replaces all exchanges of an activity, keeping the
	// given order
	ReplaceExchanges(output domain.Key, exchanges []domain.Exchange) error
	UpsertMethod(method domain.Method, factors map[domain.Key]float64) error

	Commit() error
	Rollback() error
}

// InventoryStore is an Inventory that accepts transactional writes
type InventoryStore interface {
	Inventory

	BeginTx() (GraphWriter, error)
}
