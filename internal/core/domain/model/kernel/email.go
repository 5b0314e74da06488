package kernel

import (
	"strings"

	"deliveryops/internal/pkg/errs"
	"deliveryops/internal/pkg/guard"
)

// ErrEmailIsNotConstructed indicates that an Email was not created through NewEmail.
var ErrEmailIsNotConstructed = errs.NewValueIsRequiredError("Email must be created via NewEmail")

// Email is the customer e-mail address used as the partition attribute of
// the order store. Validation is intentionally shallow: the address was
// validated by the order-placement subsystem, here it only has to be a
// plausible non-empty key.
type Email struct {
	value string

	guard guard.ConstructorGuard
}

// NewEmail creates an Email value object. The address is lower-cased so
// that key lookups are case-insensitive.
func NewEmail(value string) (Email, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return Email{}, errs.NewValueIsRequiredError("customer email")
	}
	if !strings.Contains(value, "@") {
		return Email{}, errs.NewValueIsInvalidError("customer email")
	}

	return Email{
		value: value,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Email was created through NewEmail.
func (e Email) Validate() error {
	return e.guard.Validate(ErrEmailIsNotConstructed)
}

// String returns the normalized address.
func (e Email) String() string {
	return e.value
}

// IsEqual compares two addresses by normalized value.
func (e Email) IsEqual(other Email) bool {
	return e.value == other.value
}
