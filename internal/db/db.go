// Package db is the storage port the journal repository is built on.
package db

// DB hands out the underlying connection of a storage adapter; repositories
// assert it to the concrete driver type they were written for.
type DB interface {
	Conn() any
	Close() error
}
