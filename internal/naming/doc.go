// Package naming resolves type-name collisions across the structure and
// field namespaces of a service model and provides the default external-name
// transform.
package naming
