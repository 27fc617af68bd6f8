// Package task provides the background task queue and worker pool used to
// run best-effort notification side effects after a purchase commits.
package task
