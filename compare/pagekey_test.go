package compare

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageKey(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{name: "root", url: "http://x/", want: "/"},
		{name: "no path", url: "http://x", want: "/"},
		{name: "port token", url: "http://localhost:PORT/about", want: "/about"},
		{name: "port token in path", url: "http://x/PORT/y", want: "/3000/y"},
		{name: "query and fragment dropped", url: "https://example.com/a?b=1#c", want: "/a"},
		{name: "escaped path kept", url: "https://example.com/a%20b", want: "/a%20b"},
		{name: "trailing slash kept", url: "https://example.com/docs/", want: "/docs/"},
		{name: "dot segments resolved", url: "http://x/a/../b", want: "/b"},
		{name: "single dot segment resolved", url: "http://x/a/./b/", want: "/a/b/"},
		{name: "dot segments above root", url: "http://x/../a", want: "/a"},
		{name: "relative", url: "not a url", wantErr: true},
		{name: "bad host", url: "http://[::1", wantErr: true},
		{name: "empty", url: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PageKey(tt.url)
			if tt.wantErr {
				var urlErr *MalformedURLError
				assert.True(t, errors.As(err, &urlErr), "PageKey(%q) error = %v", tt.url, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
