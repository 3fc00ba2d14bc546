package redact

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmail_Table(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "ASCII_local_gt_2", in: "foobar@example.com", want: "fo***@example.com"},
		{name: "ASCII_local_len_2", in: "ab@ex.com", want: "***@ex.com"},
		{name: "invalid_no_at", in: "no-at-here", want: "***"},
		{name: "invalid_multiple_at", in: "a@b@c", want: "***"},
		{name: "empty_string", in: "", want: "***"},
		{name: "unicode_local", in: "юзер@пример.рф", want: "юз***@пример.рф"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, Email(tt.in))
		})
	}
}

func TestToken_Literal(t *testing.T) {
	t.Parallel()

	require.Equal(t, "[REDACTED_TOKEN]", Token())
}

func TestPreview(t *testing.T) {
	t.Parallel()

	long := "eyJhbGciOiJIUzI1NiJ9.payload.sig"
	got := Preview(long)
	require.True(t, strings.HasPrefix(got, "sha256:"))
	require.Len(t, got, len("sha256:")+8)
	require.NotContains(t, got, "eyJ")
	require.NotContains(t, got, "sig")
	require.Equal(t, got, Preview(long), "отпечаток стабилен")

	// Два HS256-токена с одинаковым заголовком различимы.
	other := "eyJhbGciOiJIUzI1NiJ9.payload.other"
	require.NotEqual(t, got, Preview(other))

	require.Equal(t, Token(), Preview("short"))
	require.Equal(t, Token(), Preview(""))
}

func TestAuthorization(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Bearer [REDACTED_TOKEN]", Authorization("Bearer abc.def.ghi"))
	require.Equal(t, "[REDACTED_TOKEN]", Authorization("opaque"))
	require.Equal(t, "", Authorization(""))
}
