// Package store defines the persistence interfaces the services depend on,
// plus the DBTX abstraction and transaction helper shared by their
// implementations. Keeping the interfaces here lets business logic stay
// independent of the concrete database driver.
package store
