package book

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_ports.go -package=book

// Provider supplies the current set of books from some source.
// The returned order is significant to callers.
type Provider interface {
	GetBooks(ctx context.Context) ([]Book, error)
}
