package chans

import "context"

// Feed returns a channel that yields items in order.
//
// Channel is closed after the last item
// or when ctx is done.
func Feed[T any](ctx context.Context, items []T) <-chan T {
	ch := make(chan T)

	go func() {
		defer close(ch)
		for _, item := range items {
			select {
			case ch <- item:
			case <-ctx.Done():
				return
			}
		}
	}()

	return ch
}
