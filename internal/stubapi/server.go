// Package stubapi is an in-memory implementation of the ChefStock backend
// REST contract, for local development and tests.
package stubapi

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yuditriaji/chefstock/pkg/config"
	"github.com/yuditriaji/chefstock/pkg/middleware"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const maxBodyBytes = 1 << 20

type Server struct {
	secret []byte
	log    *zap.Logger
	now    func() time.Time

	mu        sync.Mutex
	users     map[string]user
	nextID    map[string]int
	items     map[int]*itemRecord
	suppliers map[int]*supplierRecord
	sales     []*saleRecord
}

type user struct {
	ID           int
	Username     string
	PasswordHash []byte
}

type Option func(*Server)

// WithClock replaces time.Now for sale dates and report windows. Token
// lifetimes always use the real clock.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// New builds an empty backend with the configured user seeded.
func New(cfg config.StubConfig, log *zap.Logger, opts ...Option) (*Server, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		secret:    []byte(cfg.JWTSecret),
		log:       log.Named("stubapi"),
		now:       time.Now,
		users:     make(map[string]user),
		nextID:    make(map[string]int),
		items:     make(map[int]*itemRecord),
		suppliers: make(map[int]*supplierRecord),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.AddUser(cfg.Username, cfg.Password); err != nil {
		return nil, err
	}
	return s, nil
}

// AddUser registers a login. Existing users are replaced.
func (s *Server) AddUser(username, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := len(s.users) + 1
	if existing, ok := s.users[username]; ok {
		id = existing.ID
	}
	s.users[username] = user{ID: id, Username: username, PasswordHash: hashedPassword}
	return nil
}

// Router mounts every route under /api.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(s.log), middleware.LimitBody(maxBodyBytes))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.POST("/login/", s.login)

	protected := api.Group("")
	protected.Use(middleware.BearerAuth(s.secret))
	{
		protected.GET("/inventory/", s.listItems)
		protected.POST("/inventory/", s.createItem)
		protected.GET("/inventory/:id/", s.getItem)
		protected.PUT("/inventory/:id/", s.updateItem)
		protected.DELETE("/inventory/:id/", s.deleteItem)

		protected.GET("/suppliers/", s.listSuppliers)
		protected.POST("/suppliers/", s.createSupplier)
		protected.GET("/suppliers/:id/", s.getSupplier)
		protected.PUT("/suppliers/:id/", s.updateSupplier)
		protected.DELETE("/suppliers/:id/", s.deleteSupplier)

		protected.GET("/sales/", s.listSales)
		protected.POST("/sales/", s.createSale)
		protected.GET("/sales/daily_summary/", s.dailySummary)

		protected.GET("/reports/dashboard-stats/", s.dashboardStats)
		protected.GET("/reports/sales-report/", s.salesReport)
	}

	r.NoRoute(notFound)
	return r
}

func (s *Server) allocID(kind string) int {
	s.nextID[kind]++
	return s.nextID[kind]
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
}

// fieldErrors is the per-field error body of a rejected write.
type fieldErrors map[string][]string

func (f fieldErrors) add(field, msg string) {
	f[field] = append(f[field], msg)
}

func badRequest(c *gin.Context, errs fieldErrors) {
	c.JSON(http.StatusBadRequest, errs)
}
