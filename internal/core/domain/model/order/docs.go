// Package order provides the Order aggregate of the food delivery core: an
// order placed by a user at a restaurant, its items with frozen prices, and
// the status lifecycle.
//
// The package includes:
//   - Order: the aggregate root owning identity, address, fee, items and lifecycle
//   - Item: an order line carrying the menu item name and price at order time
//   - Status: the state machine Pending -> Confirmed -> Preparing -> OutForDelivery -> Delivered,
//     with Cancelled reachable from every non-terminal state
//
// Key business rules:
//   - An order always has at least one item
//   - totalAmount = Σ(quantity × priceAtOrderTime) + deliveryFee (fee treated as 0 when absent)
//   - Item snapshots never change after creation; catalog price changes do not reach placed orders
//   - Delivered and Cancelled are terminal; requesting the same terminal status again is a no-op
//   - actualDeliveryTime is stamped once, on entering Delivered
package order
