package log

import (
	"net/http/httptest"
	"testing"
)

func TestClientIP(t *testing.T) {
	cases := []struct {
		name       string
		remoteAddr string
		forwarded  string
		want       string
	}{
		{"socket peer without port", "192.0.2.1:4321", "", "192.0.2.1"},
		{"unparseable peer passed through", "192.0.2.1", "", "192.0.2.1"},
		{"forwarded single", "10.0.0.1:80", "203.0.113.7", "203.0.113.7"},
		{"forwarded chain takes first", "10.0.0.1:80", "203.0.113.7, 10.0.0.2", "203.0.113.7"},
		{"forwarded with spaces", "10.0.0.1:80", "  203.0.113.7  ", "203.0.113.7"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tc.remoteAddr
			if tc.forwarded != "" {
				r.Header.Set("X-Forwarded-For", tc.forwarded)
			}
			if got := ClientIP(r); got != tc.want {
				t.Errorf("ClientIP = %q, want %q", got, tc.want)
			}
		})
	}
}
