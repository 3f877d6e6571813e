package release

// Option holds either an explicitly supplied value or the auto-detect default.
// The zero value means auto-detect; inference fills it and never overrides an
// explicit value.
type Option[T any] struct {
	value    T
	explicit bool
}

// Explicit wraps a value supplied by the operator.
func Explicit[T any](v T) Option[T] {
	return Option[T]{value: v, explicit: true}
}

// Get returns the explicit value and whether one was supplied.
func (o Option[T]) Get() (T, bool) {
	return o.value, o.explicit
}

// IsExplicit reports whether the operator supplied a value.
func (o Option[T]) IsExplicit() bool {
	return o.explicit
}
