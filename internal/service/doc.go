// Package service contains the application use cases. Each service
// coordinates the stores of internal/store inside one transaction per
// operation and applies the business rules that span entities, such as the
// consistency of a venta total with the price of its auto.
//
// Services depend on store interfaces only, never on a specific database.
package service
