// Package order implements the delivery side of the order lifecycle: the
// Order aggregate, the Status state machine and the Outcome tagged union.
//
// An order is created elsewhere and moves through fulfillment states until
// it reaches one of the deliverable statuses (confirmed, packed, shipped,
// out_for_delivery). From there exactly one terminal delivery outcome may
// be applied: successful (delivered), failed (failed_delivery) or returned
// (returned). Terminal statuses accept no further outcome.
//
// Validation rules live on the aggregate: successful deliveries require
// customer verification, cash-on-delivery orders additionally require
// confirmed payment collection, and failed or returned deliveries require
// a failure reason. Violations are reported as ValidationError before any
// field is mutated, so callers can safely abort without compensating.
package order
