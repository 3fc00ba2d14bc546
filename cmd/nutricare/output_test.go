package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrinter(t *testing.T) {
	type item struct {
		FoodID   string   `json:"food_id"`
		Quantity int      `json:"quantity"`
		Code     string   `json:"code"`
		Notes    *string  `json:"notes"`
		Tags     []string `json:"tags"`
	}
	v := item{FoodID: "f-1", Quantity: 2, Code: "123", Tags: []string{"veg"}}

	tests := []struct {
		name   string
		format string
		want   string
	}{
		{
			name:   "json",
			format: formatJSON,
			want:   "{\n  \"food_id\": \"f-1\",\n  \"quantity\": 2,\n  \"code\": \"123\",\n  \"notes\": null,\n  \"tags\": [\n    \"veg\"\n  ]\n}\n",
		},
		{
			name:   "yaml keeps json keys and string types",
			format: formatYAML,
			want:   "food_id: f-1\nquantity: 2\ncode: \"123\"\nnotes: null\ntags:\n    - veg\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			p, err := newPrinter(&buf, tt.format)
			require.NoError(t, err)

			require.NoError(t, p.print(v))
			require.Equal(t, tt.want, buf.String())
		})
	}
}

func TestNewPrinter_UnknownFormat(t *testing.T) {
	_, err := newPrinter(&bytes.Buffer{}, "table")
	require.ErrorContains(t, err, `unknown output format "table"`)
}
