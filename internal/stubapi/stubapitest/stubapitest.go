// Package stubapitest runs the stub backend on an httptest server with a
// client already pointed at it.
package stubapitest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/yuditriaji/chefstock/internal/stubapi"
	"github.com/yuditriaji/chefstock/pkg/activitylog"
	"github.com/yuditriaji/chefstock/pkg/apiclient"
	"github.com/yuditriaji/chefstock/pkg/config"
	"github.com/yuditriaji/chefstock/pkg/credential"
	"github.com/yuditriaji/chefstock/pkg/storage"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

const (
	Username = "chef"
	Password = "s3cret-pass"
)

type Env struct {
	Stub   *stubapi.Server
	HTTP   *httptest.Server
	KV     storage.KV
	Store  *credential.Store
	Client *apiclient.Client
	Audit  *activitylog.Logger
}

// New starts an empty stub backend and logs the client in.
func New(t testing.TB, opts ...stubapi.Option) *Env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	stub, err := stubapi.New(config.StubConfig{
		JWTSecret: "test-secret",
		Username:  Username,
		Password:  Password,
	}, zap.NewNop(), opts...)
	if err != nil {
		t.Fatalf("stubapi.New: %v", err)
	}
	srv := httptest.NewServer(stub.Router())
	t.Cleanup(srv.Close)

	kv := storage.NewMemory()
	store := credential.NewStore(kv)
	client, err := apiclient.New(srv.URL+"/api/", store.Source())
	if err != nil {
		t.Fatalf("apiclient.New: %v", err)
	}

	env := &Env{
		Stub:   stub,
		HTTP:   srv,
		KV:     kv,
		Store:  store,
		Client: client,
		Audit:  activitylog.NewLogger(zap.NewNop()),
	}
	env.Login(t)
	return env
}

// Login stores a fresh token pair for the seeded user.
func (e *Env) Login(t testing.TB) {
	t.Helper()
	var resp struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	err := e.Client.Do(context.Background(), apiclient.Request{
		Method:    http.MethodPost,
		Path:      "login/",
		Body:      map[string]string{"username": Username, "password": Password},
		Anonymous: true,
	}, &resp)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := e.Store.Set(context.Background(), &oauth2.Token{AccessToken: resp.Access, RefreshToken: resp.Refresh}); err != nil {
		t.Fatalf("store token: %v", err)
	}
}
