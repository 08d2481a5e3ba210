// Package types defines the entity types, configuration, and standard
// errors shared by the hueboard storage engine and its callers.
package types
