package book

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"bookmetrics/internal/platform/bookfeed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockFeedClient struct {
	mock.Mock
}

func (m *mockFeedClient) ListBooks(ctx context.Context) ([]bookfeed.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]bookfeed.Item), args.Error(1)
}

func TestAPIProvider_GetBooks(t *testing.T) {
	ctx := context.Background()

	t.Run("maps feed items", func(t *testing.T) {
		client := new(mockFeedClient)
		client.On("ListBooks", ctx).Return([]bookfeed.Item{
			{ID: "1", Name: "Book 1", Author: "Author 1", Price: Float(20.5), UnitsSold: Float(100)},
			{ID: "2", IDNumeric: true, Name: "Book 2", Author: "Author 2", Price: Float(15)},
		}, nil)

		books, err := NewAPIProvider(client).GetBooks(ctx)
		require.NoError(t, err)
		assert.Equal(t, []Book{
			{ID: StringID("1"), Name: "Book 1", Author: "Author 1", Price: Float(20.5), UnitsSold: Float(100)},
			{ID: NumberID(2), Name: "Book 2", Author: "Author 2", Price: Float(15)},
		}, books)
		client.AssertExpectations(t)
	})

	t.Run("propagates feed errors", func(t *testing.T) {
		client := new(mockFeedClient)
		feedErr := errors.New("failed to fetch books: unexpected status code: 500")
		client.On("ListBooks", ctx).Return(nil, feedErr)

		books, err := NewAPIProvider(client).GetBooks(ctx)
		assert.Nil(t, books)
		assert.Equal(t, feedErr, err)
	})
}

func TestFileProvider_GetBooks(t *testing.T) {
	dir := t.TempDir()

	t.Run("reads wire format", func(t *testing.T) {
		path := filepath.Join(dir, "books.json")
		require.NoError(t, os.WriteFile(path, []byte(`[{"id":1,"name":"Book 1","author":"Author 1","price":"3.5","unitsSold":"4"}]`), 0o600))

		books, err := NewFileProvider(path).GetBooks(context.Background())
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, NumberID(1), books[0].ID)
		assert.Equal(t, 3.5, *books[0].Price)
		assert.Equal(t, 4.0, *books[0].UnitsSold)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewFileProvider(filepath.Join(dir, "nope.json")).GetBooks(context.Background())
		require.Error(t, err)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o600))

		_, err := NewFileProvider(path).GetBooks(context.Background())
		assert.True(t, errors.Is(err, bookfeed.ErrMalformedPayload))
	})
}

func TestStaticProvider_GetBooks(t *testing.T) {
	p := NewStaticProvider(Book{ID: StringID("1"), Name: "Book 1"})

	books, err := p.GetBooks(context.Background())
	require.NoError(t, err)
	books[0].Name = "changed"

	again, err := p.GetBooks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Book 1", again[0].Name)
}
