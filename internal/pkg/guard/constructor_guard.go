// Package guard provides the constructor-guard pattern used by domain
// objects and commands to ensure they are only created through their
// designated constructor functions. A zero-value guard fails validation,
// which lets Validate methods detect structs that bypassed construction.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller does
// not supply a more specific validation error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as properly constructed. Embed it in a
// struct and set it via NewConstructorGuard inside the constructor; any
// zero-value instance of the struct will then fail validation.
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marking the enclosing object as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil if the object was created through its constructor.
// Otherwise it returns validationError, or ErrDefaultConstructorGuard when
// validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
