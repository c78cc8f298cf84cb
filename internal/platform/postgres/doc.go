// Package postgres provides PostgreSQL implementations of the store
// interfaces. Stores accept a store.DBTX so the same implementation runs
// against a plain connection or a caller-managed transaction.
package postgres
