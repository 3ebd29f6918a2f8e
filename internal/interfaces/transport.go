package interfaces

import "context"

//go:generate mockgen -package=mock -source=transport.go -destination=mock/transport.go

// Transport performs a single cancellable fetch. Cancelling the context
// aborts the underlying operation; the caller must treat context.Canceled as
// expected and silent.
type Transport interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}
