package tween

// Identity wraps a value that never animates.
type Identity[T any] struct {
	current T
}

// NewIdentity wraps value.
func NewIdentity[T any](value T) *Identity[T] {
	return &Identity[T]{current: value}
}

// Current returns the wrapped value.
func (i *Identity[T]) Current() *T { return &i.current }

// Update does nothing.
func (i *Identity[T]) Update(float64) {}

// IsDone is always true.
func (i *Identity[T]) IsDone() bool { return true }

// Finish does nothing.
func (i *Identity[T]) Finish() {}

// TakeFinal returns the wrapped value.
func (i *Identity[T]) TakeFinal() T { return i.current }
