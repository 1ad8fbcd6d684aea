// Package types defines the public contract of the Orrery type catalog:
// type indices, component and system records, attribute declarations, the
// Module interface supplied by hosts, collaborator interfaces for layout
// and eligibility, and standard error types.
package types
