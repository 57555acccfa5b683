// Package postgres implements the store interfaces on PostgreSQL. Each store
// maps domain entities to rows, translates driver errors into the store
// package's sentinel errors, and supports running inside a caller-provided
// transaction via WithTx.
package postgres
