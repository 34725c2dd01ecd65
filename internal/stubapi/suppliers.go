package stubapi

import (
	"net/http"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yuditriaji/chefstock/pkg/wire"
)

var reEmail = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type supplierRecord struct {
	ID            int
	Name          string
	ContactPerson string
	Email         string
	Phone         string
	Category      string
	Rating        float64
	Status        string
	Location      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type supplierResponse struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	ContactPerson string  `json:"contact_person"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	Category      string  `json:"category"`
	Rating        float64 `json:"rating"`
	Status        string  `json:"status"`
	Location      string  `json:"location"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

type supplierInput struct {
	Name          string     `json:"name"`
	ContactPerson string     `json:"contact_person"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone"`
	Category      string     `json:"category"`
	Rating        wire.Value `json:"rating"`
	Status        string     `json:"status"`
	Location      string     `json:"location"`
}

func supplierView(sup *supplierRecord) supplierResponse {
	return supplierResponse{
		ID:            sup.ID,
		Name:          sup.Name,
		ContactPerson: sup.ContactPerson,
		Email:         sup.Email,
		Phone:         sup.Phone,
		Category:      sup.Category,
		Rating:        sup.Rating,
		Status:        sup.Status,
		Location:      sup.Location,
		CreatedAt:     timestamp(sup.CreatedAt),
		UpdatedAt:     timestamp(sup.UpdatedAt),
	}
}

func applySupplier(rec *supplierRecord, in supplierInput) fieldErrors {
	errs := fieldErrors{}
	rec.Name = requiredString(in.Name, "name", errs)
	rec.ContactPerson = requiredString(in.ContactPerson, "contact_person", errs)
	rec.Email = requiredString(in.Email, "email", errs)
	if rec.Email != "" && !reEmail.MatchString(rec.Email) {
		errs.add("email", "Enter a valid email address.")
	}
	rec.Phone = requiredString(in.Phone, "phone", errs)
	rec.Category = strings.TrimSpace(in.Category)
	rec.Location = strings.TrimSpace(in.Location)

	rec.Rating = 0
	if !in.Rating.IsNull() {
		f, err := strconv.ParseFloat(strings.TrimSpace(in.Rating.Text()), 64)
		if err != nil {
			errs.add("rating", "A valid number is required.")
		}
		rec.Rating = f
	}

	switch in.Status {
	case "":
		rec.Status = "Active"
	case "Active", "Inactive":
		rec.Status = in.Status
	default:
		errs.add("status", "\""+in.Status+"\" is not a valid choice.")
	}
	return errs
}

func (s *Server) listSuppliers(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]*supplierRecord, 0, len(s.suppliers))
	for _, sup := range s.suppliers {
		records = append(records, sup)
	}
	sort.Slice(records, func(a, b int) bool { return records[a].ID < records[b].ID })

	result := make([]supplierResponse, 0, len(records))
	for _, sup := range records {
		result = append(result, supplierView(sup))
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) getSupplier(c *gin.Context) {
	id, ok := idParam(c)
	s.mu.Lock()
	defer s.mu.Unlock()
	sup, exists := s.suppliers[id]
	if !ok || !exists {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, supplierView(sup))
}

func (s *Server) createSupplier(c *gin.Context) {
	var in supplierInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	rec := &supplierRecord{}
	if errs := applySupplier(rec, in); len(errs) > 0 {
		badRequest(c, errs)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec.ID = s.allocID("supplier")
	rec.CreatedAt = s.now()
	rec.UpdatedAt = rec.CreatedAt
	s.suppliers[rec.ID] = rec
	c.JSON(http.StatusCreated, supplierView(rec))
}

func (s *Server) updateSupplier(c *gin.Context) {
	id, ok := idParam(c)
	var in supplierInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	existing, exists := s.suppliers[id]
	if !ok || !exists {
		notFound(c)
		return
	}
	rec := *existing
	if errs := applySupplier(&rec, in); len(errs) > 0 {
		badRequest(c, errs)
		return
	}
	rec.UpdatedAt = s.now()
	*existing = rec
	c.JSON(http.StatusOK, supplierView(existing))
}

// deleteSupplier detaches the supplier from its items.
func (s *Server) deleteSupplier(c *gin.Context) {
	id, ok := idParam(c)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.suppliers[id]; !ok || !exists {
		notFound(c)
		return
	}
	delete(s.suppliers, id)
	for _, it := range s.items {
		if it.Supplier == id {
			it.Supplier = 0
		}
	}
	c.Status(http.StatusNoContent)
}
