// Package order provides the Order aggregate recorded by the coffee-shop home office.
// An order is a completed point-of-sale transaction: order metadata plus an ordered
// collection of line items.
//
// The package includes:
//   - Order: the aggregate root owning its line items and their derived total
//   - LineItem: one purchased item with its price and the barista who prepared it
//   - OrderSource: closed enumeration of the channels an order can arrive through
//   - StoreLocation: closed enumeration of the physical stores
//
// Key rules:
//   - The total is derived from line-item prices when the order is built and is never supplied
//   - Line items are rebuilt and bound to the order that holds them; they are never shared
//   - Adding or replacing line items afterwards does not recompute the total
//   - Orders compare structurally, including the order of their line items
//
// Prices use github.com/shopspring/decimal so sums never accumulate rounding error.
package order
