package metrics

import (
	"testing"

	"bookmetrics/internal/book"
	"bookmetrics/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeanUnitsSold(t *testing.T) {
	tests := []struct {
		name  string
		books []book.Book
		want  *float64
	}{
		{name: "empty", books: nil, want: nil},
		{
			name: "no sales data",
			books: []book.Book{
				{ID: book.StringID("1"), Price: book.Float(20)},
				{ID: book.StringID("2"), Price: book.Float(15)},
			},
			want: nil,
		},
		{
			name: "skips books without sales",
			books: []book.Book{
				{ID: book.StringID("1"), UnitsSold: book.Float(100)},
				{ID: book.StringID("2")},
				{ID: book.StringID("3"), UnitsSold: book.Float(200)},
			},
			want: book.Float(150),
		},
		{
			name: "zero sales count",
			books: []book.Book{
				{ID: book.StringID("1"), UnitsSold: book.Float(0)},
				{ID: book.StringID("2"), UnitsSold: book.Float(3)},
			},
			want: book.Float(1.5),
		},
		{
			name: "no rounding",
			books: []book.Book{
				{ID: book.StringID("1"), UnitsSold: book.Float(1)},
				{ID: book.StringID("2"), UnitsSold: book.Float(1)},
				{ID: book.StringID("3"), UnitsSold: book.Float(2)},
			},
			want: book.Float(4.0 / 3.0),
		},
		{
			name: "total beyond float range",
			books: []book.Book{
				{ID: book.StringID("1"), UnitsSold: book.Float(1e308)},
				{ID: book.StringID("2"), UnitsSold: book.Float(1e308)},
			},
			want: book.Float(1e308),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MeanUnitsSold(tt.books))
		})
	}
}

func TestCheapestBook(t *testing.T) {
	t.Run("none priced", func(t *testing.T) {
		assert.Nil(t, CheapestBook([]book.Book{{ID: book.StringID("1")}}))
		assert.Nil(t, CheapestBook(nil))
	})

	t.Run("earliest of equal prices wins", func(t *testing.T) {
		books := []book.Book{
			{ID: book.StringID("1"), Price: book.Float(20)},
			{ID: book.StringID("2"), Price: book.Float(10)},
			{ID: book.StringID("3"), Price: book.Float(10)},
		}
		got := CheapestBook(books)
		require.NotNil(t, got)
		assert.Equal(t, book.StringID("2"), got.ID)
	})

	t.Run("zero price counts", func(t *testing.T) {
		books := []book.Book{
			{ID: book.StringID("1"), Price: book.Float(5)},
			{ID: book.StringID("2")},
			{ID: book.StringID("3"), Price: book.Float(0)},
		}
		got := CheapestBook(books)
		require.NotNil(t, got)
		assert.Equal(t, book.StringID("3"), got.ID)
	})

	t.Run("result does not alias input", func(t *testing.T) {
		books := []book.Book{{ID: book.StringID("1"), Name: "Book 1", Price: book.Float(5)}}
		got := CheapestBook(books)
		got.Name = "changed"
		assert.Equal(t, "Book 1", books[0].Name)
	})

	t.Run("price not above any other", func(t *testing.T) {
		books := testutil.ScenarioBooks()
		got := CheapestBook(books)
		require.NotNil(t, got)
		for _, b := range books {
			assert.LessOrEqual(t, *got.Price, *b.Price)
		}
	})
}

func TestBooksByAuthor(t *testing.T) {
	books := []book.Book{
		{ID: book.StringID("1"), Author: "Author 1"},
		{ID: book.StringID("2"), Author: "Author 10"},
		{ID: book.StringID("3"), Author: "author 1"},
		{ID: book.StringID("4"), Author: ""},
	}

	tests := []struct {
		name   string
		author string
		want   []string
	}{
		{name: "case insensitive exact", author: "AUTHOR 1", want: []string{"1", "3"}},
		{name: "not a substring match", author: "Author", want: []string{}},
		{name: "no match", author: "Non Existent Author", want: []string{}},
		{name: "empty filter never matches missing author", author: "", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BooksByAuthor(books, tt.author)
			require.NotNil(t, got)
			ids := []string{}
			for _, b := range got {
				ids = append(ids, b.ID.String())
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestCompute_NoAuthorFilter(t *testing.T) {
	res := Compute(testutil.ScenarioBooks(), nil)
	require.NotNil(t, res.BooksWrittenByAuthor)
	assert.Empty(t, res.BooksWrittenByAuthor)
}
