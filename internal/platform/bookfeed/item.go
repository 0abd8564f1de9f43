package bookfeed

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrMalformedPayload is returned when the feed body is not a JSON array of books.
var ErrMalformedPayload = errors.New("malformed payload")

// Sales counts arrive under either name depending on the feed version.
var unitsSoldKeys = []string{"units_sold", "unitsSold"}

// Item is one catalog entry with numeric fields already coerced.
// A nil Price or UnitsSold means the field was absent or null in the payload.
type Item struct {
	ID        string
	IDNumeric bool
	Name      string
	Author    string
	Price     *float64
	UnitsSold *float64
}

// ParseItems decodes a feed body. Numbers may arrive as JSON numbers or as
// numeric strings; anything else in a numeric field is a malformed payload.
func ParseItems(body []byte) ([]Item, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformedPayload)
	}
	root := gjson.ParseBytes(body)
	if !root.IsArray() {
		return nil, fmt.Errorf("%w: expected an array of books", ErrMalformedPayload)
	}

	entries := root.Array()
	items := make([]Item, 0, len(entries))
	for i, entry := range entries {
		item, err := parseItem(entry)
		if err != nil {
			return nil, fmt.Errorf("%w: book %d: %v", ErrMalformedPayload, i, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func parseItem(entry gjson.Result) (Item, error) {
	if !entry.IsObject() {
		return Item{}, errors.New("not an object")
	}

	var item Item
	id := entry.Get("id")
	switch id.Type {
	case gjson.Number:
		item.ID = id.Raw
		item.IDNumeric = true
	case gjson.String:
		item.ID = id.Str
	}
	item.Name = entry.Get("name").String()
	if author := entry.Get("author"); author.Type == gjson.String {
		item.Author = author.Str
	}

	price, err := number(entry.Get("price"), false)
	if err != nil {
		return Item{}, fmt.Errorf("price: %w", err)
	}
	item.Price = price

	for _, key := range unitsSoldKeys {
		field := entry.Get(key)
		if !field.Exists() || field.Type == gjson.Null {
			continue
		}
		units, err := number(field, true)
		if err != nil {
			return Item{}, fmt.Errorf("%s: %w", key, err)
		}
		item.UnitsSold = units
		break
	}
	return item, nil
}

// number converts a JSON number or numeric string. Absent and null yield nil.
// Integer fields drop the fractional part of string values.
func number(field gjson.Result, integer bool) (*float64, error) {
	if !field.Exists() {
		return nil, nil
	}
	var v float64
	switch field.Type {
	case gjson.Null:
		return nil, nil
	case gjson.Number:
		v = field.Num
	case gjson.String:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(field.Str), 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", field.Str)
		}
		v = parsed
		if integer {
			v = math.Trunc(v)
		}
	default:
		return nil, fmt.Errorf("unexpected value %s", field.Raw)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("%s is not finite", field.Raw)
	}
	return &v, nil
}
