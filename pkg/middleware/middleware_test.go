package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/yuditriaji/chefstock/pkg/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func sign(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatal(err)
	}
	return tok
}

func TestBearerAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", middleware.BearerAuth([]byte("k")), func(c *gin.Context) {
		c.String(http.StatusOK, "%v", c.GetString(middleware.UsernameKey))
	})

	exp := time.Now().Add(time.Hour).Unix()
	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"not bearer", "Token abc", http.StatusUnauthorized},
		{"wrong key", "Bearer " + sign(t, "other", jwt.MapClaims{"token_type": "access", "exp": exp}), http.StatusUnauthorized},
		{"expired", "Bearer " + sign(t, "k", jwt.MapClaims{"token_type": "access", "exp": time.Now().Add(-time.Minute).Unix()}), http.StatusUnauthorized},
		{"refresh token", "Bearer " + sign(t, "k", jwt.MapClaims{"token_type": "refresh", "exp": exp}), http.StatusUnauthorized},
		{"valid", "Bearer " + sign(t, "k", jwt.MapClaims{"token_type": "access", "username": "chef", "exp": exp}), http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)
			if rr.Code != tc.want {
				t.Fatalf("status = %d, want %d (%s)", rr.Code, tc.want, rr.Body)
			}
			if tc.want == http.StatusOK && rr.Body.String() != "chef" {
				t.Fatalf("username = %q", rr.Body)
			}
		})
	}
}

func TestLimitBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/", middleware.LimitBody(8), func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusOK)
	})

	for body, want := range map[string]int{"small": http.StatusOK, strings.Repeat("x", 64): http.StatusRequestEntityTooLarge} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
		if rr.Code != want {
			t.Errorf("%d-byte body: status %d, want %d", len(body), rr.Code, want)
		}
	}
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)
	r := gin.New()
	r.Use(middleware.RequestLogger(zap.New(core)))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))
	entries := logs.All()
	if len(entries) != 1 || entries[0].ContextMap()["status"] != int64(http.StatusTeapot) {
		t.Fatalf("entries = %+v", entries)
	}
}
