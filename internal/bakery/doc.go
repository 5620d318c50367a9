// Package bakery provides the storage model for bakeries and their baked goods.
//
// A Bakery owns zero or more BakedGoods. Bakeries are created by seeding and
// may only be renamed through the API; baked goods are created, listed by
// price and deleted.
//
// The package provides a Repository interface with a SQLite implementation,
// form parsers that turn request fields into typed values, and Seed for
// populating an empty database.
//
// # Thread Safety
//
// SQLiteRepository is safe for concurrent use from multiple goroutines.
package bakery
