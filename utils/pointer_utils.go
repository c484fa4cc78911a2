package utils

// Ptr returns a pointer to v
func Ptr[T any](v T) *T {
	return &v
}

// Deref returns *p, or the zero value when p is nil
func Deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
