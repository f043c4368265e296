// Package ptr builds pointers to values in a single expression, for the
// nullable fields on audit records and registry entries.
package ptr

// To returns a pointer to v.
func To[T any](v T) *T {
	return &v
}
