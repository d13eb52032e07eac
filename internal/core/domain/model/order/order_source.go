package order

import (
	"fmt"

	"homeoffice/internal/pkg/errs"
)

// OrderSource is the channel through which an order was placed.
//
// The member list is closed. Adding a channel is a schema change: the persisted form is
// the String() name, so existing rows keep their meaning when members are appended.
type OrderSource int

const (
	// OrderSourceUnknown is the zero value and never valid.
	OrderSourceUnknown OrderSource = iota

	// InStore orders were rung up at the counter.
	InStore

	// Mobile orders came from the mobile app.
	Mobile

	// Web orders came from the website.
	Web

	// Kiosk orders came from a self-service kiosk.
	Kiosk
)

var orderSourceNames = map[OrderSource]string{
	InStore: "IN_STORE",
	Mobile:  "MOBILE",
	Web:     "WEB",
	Kiosk:   "KIOSK",
}

// OrderSources returns every valid source in declaration order.
func OrderSources() []OrderSource {
	return []OrderSource{InStore, Mobile, Web, Kiosk}
}

// ParseOrderSource maps a persisted name such as "MOBILE" back to its OrderSource.
func ParseOrderSource(name string) (OrderSource, error) {
	for source, sourceName := range orderSourceNames {
		if sourceName == name {
			return source, nil
		}
	}
	return OrderSourceUnknown, errs.NewValueIsInvalidErrorWithCause(
		"orderSource",
		fmt.Errorf("%q is not a valid order source", name),
	)
}

// Validate rejects OrderSourceUnknown and values outside the declared members.
func (s OrderSource) Validate() error {
	if _, ok := orderSourceNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("orderSource", fmt.Errorf("%d is not a valid order source", s))
	}
	return nil
}

// String returns the persisted name, or "UNKNOWN".
func (s OrderSource) String() string {
	if name, ok := orderSourceNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}
