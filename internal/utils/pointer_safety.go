package utils

// Value dereferences v, returning the zero value for nil pointers.
func Value[T any](v *T) T {
	if v == nil {
		return *new(T)
	}
	return *v
}

// Ptr returns a pointer to a copy of v.
func Ptr[T any](v T) *T {
	return &v
}

// NilIfEmpty returns nil for the zero value and a pointer otherwise. Used for
// optional columns that are stored as NULL rather than empty strings.
func NilIfEmpty[T comparable](v T) *T {
	var zero T
	if v == zero {
		return nil
	}
	return &v
}
