// Package kernel contains shared value objects used across the domain model:
// the external order identifier and the customer e-mail partition key.
//
// Both types follow the constructor-guard pattern: the zero value is invalid
// and Validate reports objects that bypassed their constructor.
package kernel
