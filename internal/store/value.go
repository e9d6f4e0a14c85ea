package store

// Value is a state field edited through a buffer: Write changes what Read
// returns without touching the committed value until Apply; Reset discards
// the edit. Methods return a new Value so the owning state stays immutable.
type Value[T any] struct {
	value   T
	buffer  T
	editing bool
}

// NewValue returns a Value committed to v.
func NewValue[T any](v T) Value[T] {
	return Value[T]{value: v}
}

// Write buffers v.
func (v Value[T]) Write(x T) Value[T] {
	v.buffer = x
	v.editing = true
	return v
}

// Read returns the buffered value while editing, the committed value
// otherwise.
func (v Value[T]) Read() T {
	if v.editing {
		return v.buffer
	}
	return v.value
}

// Committed returns the last applied value.
func (v Value[T]) Committed() T {
	return v.value
}

// Editing reports whether a buffered value is pending.
func (v Value[T]) Editing() bool {
	return v.editing
}

// Apply commits the buffered value, if any.
func (v Value[T]) Apply() Value[T] {
	if v.editing {
		v.value = v.buffer
	}
	var zero T
	v.buffer = zero
	v.editing = false
	return v
}

// Reset drops the buffered value.
func (v Value[T]) Reset() Value[T] {
	var zero T
	v.buffer = zero
	v.editing = false
	return v
}
