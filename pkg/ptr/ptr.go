// Package ptr has the pointer helper for optional values.
package ptr

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
