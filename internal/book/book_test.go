package book

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBook_MarshalJSON(t *testing.T) {
	t.Run("keeps numeric id and omits absent sales", func(t *testing.T) {
		b := Book{ID: NumberID(7), Name: "Book 7", Author: "Author 1", Price: Float(9.5)}

		out, err := json.Marshal(b)
		require.NoError(t, err)
		assert.JSONEq(t, `{"id":7,"name":"Book 7","author":"Author 1","price":9.5}`, string(out))
	})

	t.Run("keeps string id and zero sales", func(t *testing.T) {
		b := Book{ID: StringID("7"), Name: "Book 7", Author: "Author 1", Price: Float(0), UnitsSold: Float(0)}

		out, err := json.Marshal(b)
		require.NoError(t, err)
		assert.JSONEq(t, `{"id":"7","name":"Book 7","author":"Author 1","price":0,"units_sold":0}`, string(out))
	})
}

func TestID_String(t *testing.T) {
	tests := []struct {
		name string
		id   ID
		want string
		wire string
	}{
		{name: "number", id: NumberID(42), want: "42", wire: `42`},
		{name: "string", id: StringID("abc"), want: "abc", wire: `"abc"`},
		{name: "numeric text stays a string", id: StringID("42"), want: "42", wire: `"42"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.id.String())

			out, err := json.Marshal(tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.wire, string(out))
		})
	}
}
