package auth_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/yuditriaji/chefstock/internal/auth"
	"github.com/yuditriaji/chefstock/internal/stubapi"
	"github.com/yuditriaji/chefstock/pkg/apiclient"
	"github.com/yuditriaji/chefstock/pkg/config"
	"github.com/yuditriaji/chefstock/pkg/credential"
	"github.com/yuditriaji/chefstock/pkg/storage"
)

type recorder struct {
	mu      sync.Mutex
	headers map[string]string
}

func (r *recorder) last(path string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.headers[path]
}

func setup(t *testing.T) (*auth.Service, *apiclient.Client, storage.KV, *recorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	stub, err := stubapi.New(config.StubConfig{JWTSecret: "k", Username: "chef", Password: "pw"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	router := stub.Router()
	rec := &recorder{headers: map[string]string{}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.mu.Lock()
		rec.headers[r.URL.Path] = r.Header.Get("Authorization")
		rec.mu.Unlock()
		router.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	kv := storage.NewMemory()
	store := credential.NewStore(kv)
	client, err := apiclient.New(srv.URL+"/api", store.Source())
	if err != nil {
		t.Fatal(err)
	}
	return auth.NewService(client, store, nil), client, kv, rec
}

func TestLoginLogout_BearerLifecycle(t *testing.T) {
	svc, client, kv, rec := setup(t)
	ctx := context.Background()

	if err := svc.Login(ctx, "chef", "pw"); err != nil {
		t.Fatal(err)
	}
	if h := rec.last("/api/login/"); h != "" {
		t.Fatalf("login must not carry a bearer header, got %q", h)
	}
	access, err := kv.Get(ctx, credential.AccessKey)
	if err != nil || access == "" {
		t.Fatalf("access token not stored: %v", err)
	}
	if refresh, err := kv.Get(ctx, credential.RefreshKey); err != nil || refresh == "" {
		t.Fatalf("refresh token not stored: %v", err)
	}

	var items []map[string]interface{}
	if err := client.Get(ctx, "inventory/", &items); err != nil {
		t.Fatal(err)
	}
	if h := rec.last("/api/inventory/"); h != "Bearer "+access {
		t.Fatalf("Authorization = %q", h)
	}

	if err := svc.Logout(ctx); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{credential.AccessKey, credential.RefreshKey} {
		if _, err := kv.Get(ctx, key); !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("%s should be cleared, got %v", key, err)
		}
	}

	err = client.Get(ctx, "inventory/", &items)
	if h := rec.last("/api/inventory/"); h != "" {
		t.Fatalf("header should be absent after logout, got %q", h)
	}
	if !apiclient.IsUnauthorized(err) {
		t.Fatalf("want 401 after logout, got %v", err)
	}
}

func TestLogin_Failures(t *testing.T) {
	svc, _, kv, _ := setup(t)
	ctx := context.Background()

	if err := svc.Login(ctx, "", ""); err == nil || !strings.Contains(err.Error(), "username") {
		t.Fatalf("want validation error, got %v", err)
	}

	err := svc.Login(ctx, "chef", "wrong")
	var statusErr *apiclient.HTTPStatusError
	if !errors.As(err, &statusErr) || statusErr.Status != http.StatusUnauthorized {
		t.Fatalf("want 401, got %v", err)
	}
	if _, err := kv.Get(ctx, credential.AccessKey); !errors.Is(err, storage.ErrNotFound) {
		t.Fatal("failed login must not store anything")
	}
}

func TestWhoAmI(t *testing.T) {
	svc, _, _, _ := setup(t)
	ctx := context.Background()

	if _, err := svc.WhoAmI(ctx); !errors.Is(err, credential.ErrNoCredential) {
		t.Fatalf("want ErrNoCredential, got %v", err)
	}
	if err := svc.Login(ctx, "chef", "pw"); err != nil {
		t.Fatal(err)
	}
	claims, err := svc.WhoAmI(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserID != "1" || claims.Username != "chef" {
		t.Fatalf("claims = %+v", claims)
	}
	if claims.Expired(time.Now()) || !claims.Expired(time.Now().Add(48*time.Hour)) {
		t.Fatalf("unexpected expiry %s", claims.ExpiresAt)
	}
}

func TestParseClaims(t *testing.T) {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "u-42",
		"exp":     time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC).Unix(),
	}).SignedString([]byte("anything"))
	if err != nil {
		t.Fatal(err)
	}
	claims, err := auth.ParseClaims(tok)
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserID != "u-42" || claims.ExpiresAt.Year() != 2030 {
		t.Fatalf("claims = %+v", claims)
	}
	if _, err := auth.ParseClaims("not-a-jwt"); err == nil {
		t.Fatal("garbage must not parse")
	}
}
