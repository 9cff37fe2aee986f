package orders

import (
	"errors"
	"fmt"

	"github.com/mariamadly/loomkids-backend-go/models"
)

// ErrOrderNotFound means the order addressed by a delete/restock or status
// update does not exist.
var ErrOrderNotFound = errors.New("Order not found")

// ErrTransactionConflict is surfaced when the storage backend exhausts its
// retry budget on conflicting concurrent writes.
var ErrTransactionConflict = errors.New("transaction aborted: too many conflicting concurrent writes")

// TotalsMismatchError means the client-supplied totals do not match the
// server-side recomputation from the item prices. The attempt is rejected
// before anything is read or written.
type TotalsMismatchError struct {
	Field    string
	Given    float64
	Computed float64
}

func (e *TotalsMismatchError) Error() string {
	return fmt.Sprintf("%s mismatch: given %.2f, computed %.2f", e.Field, e.Given, e.Computed)
}

// InvalidTransitionError means a status update targeted an unknown status or
// a transition the table does not allow.
type InvalidTransitionError struct {
	From models.OrderStatus
	To   models.OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition %q -> %q", e.From, e.To)
}
