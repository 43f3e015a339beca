package orders

import "fmt"

// ValidationError covers missing or malformed request input. Handlers map it
// to 400.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// NotFoundError names the order item id that resolved against neither the
// product nor the tool collection. Handlers map it to 404.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("product %s not found", e.ID)
}

// InsufficientStockError names the item and the shortfall. Handlers map it
// to 400.
type InsufficientStockError struct {
	Name      string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s. Available: %d, Requested: %d",
		e.Name, e.Available, e.Requested)
}

// PersistenceError wraps any storage failure. Handlers map it to 500.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("storage failure: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
