// Package store defines interfaces for data persistence operations on the
// sales entities. These interfaces abstract the underlying data storage
// mechanism from the application's core logic.
//
// A request works against the store through a single transaction obtained
// from a Transactor; stores are bound to it with their WithTx method.
package store
