package kernel

import (
	"strings"

	"deliveryops/internal/pkg/errs"
	"deliveryops/internal/pkg/guard"
)

// ErrOrderIDIsNotConstructed indicates that an OrderID was not created
// through NewOrderID. The zero value of OrderID is invalid.
var ErrOrderIDIsNotConstructed = errs.NewValueIsRequiredError("OrderID must be created via NewOrderID")

// OrderID is a value object wrapping the external order identifier.
// Order identifiers are assigned by the order-placement subsystem and are
// opaque non-empty strings from this service's point of view.
type OrderID struct {
	value string

	guard guard.ConstructorGuard
}

// NewOrderID creates an OrderID from its string form.
// Leading and trailing whitespace is trimmed; an empty result is rejected.
func NewOrderID(value string) (OrderID, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return OrderID{}, errs.NewValueIsRequiredError("order id")
	}

	return OrderID{
		value: value,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the OrderID was created through NewOrderID.
func (id OrderID) Validate() error {
	return id.guard.Validate(ErrOrderIDIsNotConstructed)
}

// String returns the raw identifier.
func (id OrderID) String() string {
	return id.value
}

// IsEqual compares two order identifiers by value.
func (id OrderID) IsEqual(other OrderID) bool {
	return id.value == other.value
}
