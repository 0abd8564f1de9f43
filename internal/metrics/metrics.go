// Package metrics derives sales and price aggregates from a snapshot of books.
package metrics

import (
	"math"
	"strings"

	"bookmetrics/internal/book"
)

// Result is the request-scoped output of GetMetrics.
type Result struct {
	MeanUnitsSold        *float64    `json:"mean_units_sold"`
	CheapestBook         *book.Book  `json:"cheapest_book"`
	BooksWrittenByAuthor []book.Book `json:"books_written_by_author"`
}

// Compute builds a Result from one snapshot. A nil author disables the author filter.
func Compute(books []book.Book, author *string) Result {
	res := Result{
		MeanUnitsSold:        MeanUnitsSold(books),
		CheapestBook:         CheapestBook(books),
		BooksWrittenByAuthor: []book.Book{},
	}
	if author != nil {
		res.BooksWrittenByAuthor = BooksByAuthor(books, *author)
	}
	return res
}

// MeanUnitsSold averages UnitsSold over the books that carry it.
// It returns nil when no book has sales data.
func MeanUnitsSold(books []book.Book) *float64 {
	sales := make([]float64, 0, len(books))
	var sum float64
	for _, b := range books {
		if !b.HasUnitsSold() {
			continue
		}
		sales = append(sales, *b.UnitsSold)
		sum += *b.UnitsSold
	}
	if len(sales) == 0 {
		return nil
	}
	n := float64(len(sales))
	mean := sum / n
	if math.IsInf(sum, 0) {
		// Finite counts whose total overflows: divide before adding.
		mean = 0
		for _, v := range sales {
			mean += v / n
		}
	}
	return &mean
}

// CheapestBook returns the first book with the lowest price, or nil when no book has one.
func CheapestBook(books []book.Book) *book.Book {
	var cheapest *book.Book
	for i := range books {
		if !books[i].HasPrice() {
			continue
		}
		if cheapest == nil || *books[i].Price < *cheapest.Price {
			cheapest = &books[i]
		}
	}
	if cheapest == nil {
		return nil
	}
	found := *cheapest
	return &found
}

// BooksByAuthor keeps books whose author equals author ignoring case, in input order.
// Books without an author never match. The result is never nil.
func BooksByAuthor(books []book.Book, author string) []book.Book {
	want := strings.ToLower(author)
	matched := []book.Book{}
	for _, b := range books {
		if b.Author == "" {
			continue
		}
		if strings.ToLower(b.Author) == want {
			matched = append(matched, b)
		}
	}
	return matched
}
