package stubapi

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/yuditriaji/chefstock/pkg/wire"
)

const required = "This field is required."

func requiredString(v, field string, errs fieldErrors) string {
	v = strings.TrimSpace(v)
	if v == "" {
		errs.add(field, required)
	}
	return v
}

func intField(v wire.Value, field string, fallback int, errs fieldErrors) int {
	if v.IsNull() {
		return fallback
	}
	i, err := strconv.Atoi(strings.TrimSpace(v.Text()))
	if err != nil {
		errs.add(field, "A valid integer is required.")
		return 0
	}
	return i
}

func moneyField(v wire.Value, field string, errs fieldErrors) decimal.Decimal {
	if v.IsNull() {
		errs.add(field, required)
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.TrimSpace(v.Text()))
	if err != nil {
		errs.add(field, "A valid number is required.")
		return decimal.Zero
	}
	if d.Exponent() < -2 && !d.Equal(d.Round(2)) {
		errs.add(field, "Ensure that there are no more than 2 decimal places.")
	}
	return d.Round(2)
}

// primaryKey parses an id from the URL or a foreign-key field.
func primaryKey(raw string) (int, bool) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	return id, err == nil && id > 0
}

func invalidPK(raw string) string {
	return fmt.Sprintf("Invalid pk %q - object does not exist.", raw)
}

func idParam(c *gin.Context) (int, bool) {
	return primaryKey(c.Param("id"))
}

func timestamp(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}
