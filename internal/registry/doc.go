// Package registry provides the name-to-factory container used to wire
// service collaborators at call time without touching call sites.
package registry
