package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"

	"bookmetrics/internal/book"
)

// ScenarioBooks returns three priced books with sales data; books 1 and 3
// share an author spelled with different case.
func ScenarioBooks() []book.Book {
	return []book.Book{
		{ID: book.NumberID(1), Name: "Book 1", Author: "Author 1", UnitsSold: book.Float(100), Price: book.Float(20)},
		{ID: book.NumberID(2), Name: "Book 2", Author: "Author 2", UnitsSold: book.Float(200), Price: book.Float(15)},
		{ID: book.NumberID(3), Name: "Book 3", Author: "author 1", UnitsSold: book.Float(300), Price: book.Float(25)},
	}
}

// BooksWithoutSales returns priced books that carry no sales data.
func BooksWithoutSales() []book.Book {
	return []book.Book{
		{ID: book.StringID("1"), Name: "Book 1", Author: "Author 1", Price: book.Float(20)},
		{ID: book.StringID("2"), Name: "Book 2", Author: "Author 2", Price: book.Float(15)},
	}
}

// NewRequest creates a new HTTP request for testing
func NewRequest(method, path string) *http.Request {
	return httptest.NewRequest(method, path, nil)
}

// RecordResponse records the HTTP response for testing
type RecordResponse struct {
	Code   int
	Header http.Header
	Body   map[string]interface{}
	Raw    []byte
}

// RecordHTTPResponse records the HTTP response
func RecordHTTPResponse(w *httptest.ResponseRecorder) RecordResponse {
	result := w.Result()
	defer result.Body.Close()

	bodyBytes, _ := io.ReadAll(result.Body)

	var bodyMap map[string]interface{}
	if len(bodyBytes) > 0 {
		_ = json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&bodyMap)
	}

	return RecordResponse{
		Code:   result.StatusCode,
		Header: result.Header,
		Body:   bodyMap,
		Raw:    bodyBytes,
	}
}

// MustJSON marshals v or panics; for building expected bodies.
func MustJSON(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}
