package textclean

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClean(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "hello world", "hello world"},
		{"short link", "read this https://t.co/AbC123 now", "read this now"},
		{"other links kept", "see https://example.com/x", "see https://example.com/x"},
		{"whitespace runs", "a \n\n b\t\tc  ", "a b c"},
		{"emoji", "shipping 🚀🔥 today ✨", "shipping today"},
		{"control chars", "a\x00b\x07c", "abc"},
		{"invalid utf8", "ok\xffok", "okok"},
		{"cjk kept", "你好  世界", "你好 世界"},
		{"link only", "https://t.co/xyz", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Clean(tc.in))
		})
	}
}
