package nlp

// Capability holds a collaborator handle that may have failed to construct.
// The zero value is Unavailable with an empty reason.
type Capability[T any] struct {
	handle    T
	available bool
	reason    string
}

// Available wraps a constructed collaborator.
func Available[T any](handle T) Capability[T] {
	return Capability[T]{handle: handle, available: true}
}

// Unavailable records why a collaborator could not be constructed.
func Unavailable[T any](reason string) Capability[T] {
	return Capability[T]{reason: reason}
}

// Get returns the handle and whether it is available.
func (c Capability[T]) Get() (T, bool) {
	return c.handle, c.available
}

// Loaded reports whether the collaborator is available.
func (c Capability[T]) Loaded() bool {
	return c.available
}

// Reason is the construction failure, empty when available.
func (c Capability[T]) Reason() string {
	return c.reason
}
