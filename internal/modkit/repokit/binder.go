package repokit

// Binder binds a repository to a backend
type Binder[T any] interface {
	Bind(Reader) T
}

// BindFunc adapts a constructor to Binder
type BindFunc[T any] func(Reader) T

// Bind calls f
func (f BindFunc[T]) Bind(q Reader) T { return f(q) }

// MustBind binds q, panicking when q is nil since that is a wiring bug
func MustBind[T any](b Binder[T], q Reader) T {
	if q == nil {
		panic("repokit: nil Reader")
	}
	return b.Bind(q)
}
