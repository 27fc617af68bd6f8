// Package service implements the service execution framework: the Service
// contract, the business-error taxonomy, the error-logging decorator, the
// transactional buy-product operation, and the notification side-effect
// services.
package service
