package book

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"bookmetrics/internal/platform/bookfeed"
)

// FeedClient is the subset of the remote feed client the API provider needs.
type FeedClient interface {
	ListBooks(ctx context.Context) ([]bookfeed.Item, error)
}

// APIProvider reads books from the remote feed.
type APIProvider struct {
	client FeedClient
}

func NewAPIProvider(client FeedClient) *APIProvider {
	return &APIProvider{client: client}
}

func (p *APIProvider) GetBooks(ctx context.Context) ([]Book, error) {
	items, err := p.client.ListBooks(ctx)
	if err != nil {
		return nil, err
	}
	return fromItems(items), nil
}

// FileProvider reads books in the feed wire format from a local file.
// The file is read again on every call.
type FileProvider struct {
	path string
}

func NewFileProvider(path string) *FileProvider {
	return &FileProvider{path: path}
}

func (p *FileProvider) GetBooks(ctx context.Context) ([]Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read books file: %w", err)
	}
	items, err := bookfeed.ParseItems(data)
	if err != nil {
		return nil, fmt.Errorf("failed to read books file: %w", err)
	}
	return fromItems(items), nil
}

// StaticProvider serves a fixed in-memory list.
type StaticProvider struct {
	books []Book
}

func NewStaticProvider(books ...Book) *StaticProvider {
	return &StaticProvider{books: books}
}

func (p *StaticProvider) GetBooks(ctx context.Context) ([]Book, error) {
	out := make([]Book, len(p.books))
	copy(out, p.books)
	return out, nil
}

func fromItems(items []bookfeed.Item) []Book {
	books := make([]Book, 0, len(items))
	for _, item := range items {
		books = append(books, fromItem(item))
	}
	return books
}

func fromItem(item bookfeed.Item) Book {
	id := StringID(item.ID)
	if item.IDNumeric {
		if n, err := strconv.ParseInt(item.ID, 10, 64); err == nil {
			id = NumberID(n)
		} else {
			id = ID{value: item.ID, numeric: true}
		}
	}
	return Book{
		ID:        id,
		Name:      item.Name,
		Author:    item.Author,
		Price:     item.Price,
		UnitsSold: item.UnitsSold,
	}
}
