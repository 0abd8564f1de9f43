package metrics

import (
	"context"

	"bookmetrics/internal/book"
)

// Service computes metrics over whatever the provider returns at call time.
// It holds no state between calls.
type Service struct {
	provider book.Provider
}

// NewService creates a new metrics service.
func NewService(provider book.Provider) *Service {
	return &Service{provider: provider}
}

// GetMetrics fetches one snapshot of books and derives all three metrics from it.
// A nil author means no author filter. Provider failures are returned as a
// *ProviderFailure and never retried.
func (s *Service) GetMetrics(ctx context.Context, author *string) (Result, error) {
	books, err := s.fetch(ctx)
	if err != nil {
		return Result{}, err
	}
	return Compute(books, author), nil
}

func (s *Service) fetch(ctx context.Context) (books []book.Book, err error) {
	// A provider that panics fails the request like any other provider failure.
	defer func() {
		if r := recover(); r != nil {
			books = nil
			err = newProviderFailure(r)
		}
	}()

	books, err = s.provider.GetBooks(ctx)
	if err != nil {
		return nil, newProviderFailure(err)
	}
	return books, nil
}
