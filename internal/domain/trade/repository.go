package trade

import "context"

// OrderRepository defines the interface for order persistence.
// There is no update: orders are immutable.
type OrderRepository interface {
	// Create inserts the order and all of its lines in one nested create.
	// A second order with the same owner and external id returns shared.ErrAlreadyExists.
	Create(ctx context.Context, order *Order) error

	// FindAll returns every order with its lines and their catalog names
	FindAll(ctx context.Context) ([]Order, error)

	// FindByID finds an order with its lines
	FindByID(ctx context.Context, id int64) (*Order, error)

	// Delete removes the order (lines cascade) and returns the removed row
	Delete(ctx context.Context, id int64) (*Order, error)
}
