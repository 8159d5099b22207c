package middleware

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func requestFrom(remoteAddr string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.RemoteAddr = remoteAddr
	return req
}

func TestAllowSubnet(t *testing.T) {
	_, allowed, err := net.ParseCIDR("192.168.1.0/24")
	if err != nil {
		t.Fatalf("failed to parse CIDR: %v", err)
	}

	cases := []struct {
		name       string
		allowedNet *net.IPNet
		remoteAddr string
		wantStatus int
	}{
		{"no restriction allows all", nil, "10.0.0.1:12345", http.StatusOK},
		{"in subnet", allowed, "192.168.1.42:12345", http.StatusOK},
		{"out of subnet", allowed, "10.0.0.1:12345", http.StatusForbidden},
		{"addr without port", allowed, "192.168.1.42", http.StatusOK},
		{"unparseable addr", allowed, "not-an-ip:12345", http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := AllowSubnet(tc.allowedNet)(okHandler())
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, requestFrom(tc.remoteAddr))
			if rec.Code != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, rec.Code)
			}
		})
	}
}
