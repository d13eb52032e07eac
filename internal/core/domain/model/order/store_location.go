package order

import (
	"fmt"

	"homeoffice/internal/pkg/errs"
)

// StoreLocation identifies the physical store an order was placed at.
// Like OrderSource it is a closed enumeration persisted by name.
type StoreLocation int

const (
	// StoreLocationUnknown is the zero value and never valid.
	StoreLocationUnknown StoreLocation = iota
	Store1
	Store2
	Store3
	Store4
)

var storeLocationNames = map[StoreLocation]string{
	Store1: "STORE_1",
	Store2: "STORE_2",
	Store3: "STORE_3",
	Store4: "STORE_4",
}

// StoreLocations returns every valid location in declaration order.
func StoreLocations() []StoreLocation {
	return []StoreLocation{Store1, Store2, Store3, Store4}
}

// ParseStoreLocation maps a persisted name such as "STORE_1" back to its StoreLocation.
func ParseStoreLocation(name string) (StoreLocation, error) {
	for location, locationName := range storeLocationNames {
		if locationName == name {
			return location, nil
		}
	}
	return StoreLocationUnknown, errs.NewValueIsInvalidErrorWithCause(
		"locationId",
		fmt.Errorf("%q is not a valid store location", name),
	)
}

// Validate rejects StoreLocationUnknown and values outside the declared members.
func (l StoreLocation) Validate() error {
	if _, ok := storeLocationNames[l]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("locationId", fmt.Errorf("%d is not a valid store location", l))
	}
	return nil
}

// String returns the persisted name, or "UNKNOWN".
func (l StoreLocation) String() string {
	if name, ok := storeLocationNames[l]; ok {
		return name
	}
	return "UNKNOWN"
}
