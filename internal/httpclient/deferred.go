package httpclient

// Deferred is the eventual result of an operation started with Defer.
type Deferred[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Defer runs fn on its own goroutine and returns immediately.
func Defer[T any](fn func() (T, error)) *Deferred[T] {
	d := &Deferred[T]{done: make(chan struct{})}
	go func() {
		defer close(d.done)
		d.val, d.err = fn()
	}()
	return d
}

// Await blocks until fn has returned. It may be called any number of times.
func (d *Deferred[T]) Await() (T, error) {
	<-d.done
	return d.val, d.err
}
