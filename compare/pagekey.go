package compare

import (
	"net/url"
	"strings"
)

const (
	portToken   = "PORT"
	defaultPort = "3000"
)

// PageKey returns the path of rawURL, used to correlate pages across run sets
// and with the links mapping. Every literal PORT token is replaced with 3000
// first, since Lighthouse CI configs often template the dev server port.
func PageKey(rawURL string) (string, error) {
	resolved := strings.ReplaceAll(rawURL, portToken, defaultPort)

	u, err := url.Parse(resolved)
	if err != nil {
		return "", &MalformedURLError{URL: rawURL, Err: err}
	}
	if !u.IsAbs() {
		return "", &MalformedURLError{URL: rawURL, Err: ErrRelativeURL}
	}

	if u.Opaque != "" {
		return u.Opaque, nil
	}
	// resolve "." and ".." segments
	u = u.ResolveReference(&url.URL{})
	if path := u.EscapedPath(); path != "" {
		return path, nil
	}
	return "/", nil
}
