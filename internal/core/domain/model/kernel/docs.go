// Package kernel provides the shared value objects of the order domain:
// UUID identifiers, the delivery address and money validation helpers.
//
// Value objects are immutable and guard against zero-value use: a zero UUID or
// DeliveryAddress fails Validate, so aggregates only ever hold constructed values.
package kernel
