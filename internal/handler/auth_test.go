package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestSessionCookieSecureFlag(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		secure bool
	}{
		{"secure", true},
		{"insecure", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewAuthHandler(nil, nil, "sid", time.Hour, tc.secure)
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)

			h.setSessionCookie(c, "abc123")

			header := rec.Header().Get("Set-Cookie")
			if header == "" {
				t.Fatal("no Set-Cookie header written")
			}
			if got := strings.Contains(header, "Secure"); got != tc.secure {
				t.Fatalf("Set-Cookie = %q, Secure attribute = %v, want %v", header, got, tc.secure)
			}
		})
	}
}

func TestClearSessionCookieExpires(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := NewAuthHandler(nil, nil, "sid", time.Hour, false)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)

	h.clearSessionCookie(c)

	header := rec.Header().Get("Set-Cookie")
	if !strings.Contains(header, "Max-Age=0") {
		t.Fatalf("Set-Cookie = %q, want an expiring cookie", header)
	}
}
