// Package courier implements the delivery person aggregate.
//
// Couriers are created when an admin promotes a user account to the delivery
// role and are deactivated, never deleted, so historical orders and ratings
// keep valid references. Eligibility for assignment is the single rule owned
// here: only an active courier may be bound to an order.
package courier
