// Package api exposes the purchase workflow over HTTP and maps taxonomy
// errors to user-facing responses.
package api
