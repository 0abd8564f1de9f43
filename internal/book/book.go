package book

import (
	"encoding/json"
	"strconv"
)

// Book represents one catalog entry.
// Price and UnitsSold are nil when the source did not supply them; zero is a real value.
type Book struct {
	ID        ID       `json:"id"`
	Name      string   `json:"name"`
	Author    string   `json:"author"`
	Price     *float64 `json:"price"`
	UnitsSold *float64 `json:"units_sold,omitempty"`
}

// HasPrice reports whether the book carries a price.
func (b Book) HasPrice() bool {
	return b.Price != nil
}

// HasUnitsSold reports whether the book carries sales data.
func (b Book) HasUnitsSold() bool {
	return b.UnitsSold != nil
}

// ID is an opaque identifier that keeps the JSON form it arrived in.
type ID struct {
	value   string
	numeric bool
}

// StringID builds an identifier serialized as a JSON string.
func StringID(v string) ID {
	return ID{value: v}
}

// NumberID builds an identifier serialized as a JSON number.
func NumberID(v int64) ID {
	return ID{value: strconv.FormatInt(v, 10), numeric: true}
}

func (id ID) String() string {
	return id.value
}

func (id ID) MarshalJSON() ([]byte, error) {
	if id.numeric {
		return []byte(id.value), nil
	}
	return json.Marshal(id.value)
}

// Float returns a pointer to v, for building books with optional numeric fields.
func Float(v float64) *float64 {
	return &v
}
