package api

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeList(t *testing.T) {
	t.Parallel()

	type item struct {
		ID string `json:"id"`
	}

	tcs := []struct {
		name string
		body string
		want []item
	}{
		{"empty_body", ``, []item{}},
		{"bare_array", ` [{"id":"a"},{"id":"b"}]`, []item{{"a"}, {"b"}}},
		{"page", `{"count":1,"next":null,"results":[{"id":"a"}]}`, []item{{"a"}}},
		{"page_without_results", `{"count":0}`, []item{}},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			got, err := decodeList[item]([]byte(tc.body))
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}

	_, err := decodeList[item]([]byte(`"nope"`))
	require.Error(t, err)
}
