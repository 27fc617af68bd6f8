// Package store defines the persistence interfaces and shared database
// helpers used by the service layer.
package store
