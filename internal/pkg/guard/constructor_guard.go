// Package guard provides ConstructorGuard, a marker that lets commands, queries and
// entities detect that they were built through their constructor rather than as a
// zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes a nil error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded as a private field; only NewConstructorGuard sets it.
//
// Example:
//
//	type FindOrdersBetweenQuery struct {
//	    window kernel.TimeWindow
//	    guard  guard.ConstructorGuard
//	}
//
//	func (q FindOrdersBetweenQuery) Validate() error {
//	    return q.guard.Validate(ErrFindOrdersBetweenQueryIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
