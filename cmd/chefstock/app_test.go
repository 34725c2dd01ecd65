package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/yuditriaji/chefstock/internal/inventory"
	"github.com/yuditriaji/chefstock/internal/stubapi/stubapitest"
	"github.com/yuditriaji/chefstock/pkg/config"
	"go.uber.org/zap"
)

type harness struct {
	t   *testing.T
	env *stubapitest.Env
	cfg *config.Config
}

func newHarness(t *testing.T) *harness {
	env := stubapitest.New(t)
	env.Stub.SeedDemo()
	return &harness{
		t:   t,
		env: env,
		cfg: &config.Config{
			API:   config.APIConfig{BaseURL: env.HTTP.URL + "/api/"},
			Watch: config.WatchConfig{Interval: time.Minute},
		},
	}
}

// exec runs one command line with the given stdin and returns exit code,
// stdout and stderr.
func (h *harness) exec(stdin string, args ...string) (int, string, string) {
	h.t.Helper()
	var out, errOut bytes.Buffer
	a, err := newApp(h.cfg, zap.NewNop(), h.env.KV, &out, &errOut, strings.NewReader(stdin))
	if err != nil {
		h.t.Fatalf("newApp: %v", err)
	}
	code := a.run(context.Background(), args)
	return code, out.String(), errOut.String()
}

func TestInventoryListShowsStatusAndTotals(t *testing.T) {
	h := newHarness(t)

	code, out, errOut := h.exec("", "inventory", "list")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	for _, want := range []string{"Tomatoes", "Low Stock", "Green Valley Farms", "5 items, total value"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "N/A") {
		t.Errorf("item without supplier should print N/A:\n%s", out)
	}

	_, out, _ = h.exec("", "inventory", "list", "-status", "low")
	if !strings.Contains(out, "Tomatoes") || !strings.Contains(out, "Paper Napkins") {
		t.Errorf("low filter lost items:\n%s", out)
	}
	if strings.Contains(out, "Orange Juice") {
		t.Errorf("item at exactly its minimum is not low:\n%s", out)
	}
}

func TestInventoryAddUpdateDelete(t *testing.T) {
	h := newHarness(t)

	code, _, errOut := h.exec("", "inventory", "add", "-name", "Flour", "-sku", "FD-010", "-qty", "3", "-price", "2.50")
	if code != 0 {
		t.Fatalf("add: exit %d: %s", code, errOut)
	}
	_, out, _ := h.exec("", "inventory", "list", "-q", "flour")
	if !strings.Contains(out, "FD-010") || !strings.Contains(out, "$2.50") {
		t.Fatalf("added item not listed:\n%s", out)
	}

	items, err := inventory.NewService(h.env.Client, h.env.Audit).Items(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	var id string
	for _, i := range items {
		if i.SKU == "FD-010" {
			id = i.ID
		}
	}

	if code, _, errOut := h.exec("", "inventory", "update", id, "-qty", "9"); code != 0 {
		t.Fatalf("update: exit %d: %s", code, errOut)
	}
	if code, out, _ := h.exec("", "inventory", "restock", id, "-add", "1"); code != 0 || !strings.Contains(out, "now 10 kg") {
		t.Fatalf("restock: exit %d:\n%s", code, out)
	}

	_, out, _ = h.exec("n\n", "inventory", "delete", id)
	if !strings.Contains(out, "Cancelled") {
		t.Fatalf("delete without confirmation should cancel:\n%s", out)
	}
	if code, out, errOut := h.exec("", "inventory", "delete", id, "-yes"); code != 0 || !strings.Contains(out, "Deleted Flour") {
		t.Fatalf("delete: exit %d:\n%s%s", code, out, errOut)
	}

	code, _, errOut = h.exec("", "inventory", "delete", id, "-yes")
	if code != 1 || !strings.Contains(errOut, "404") {
		t.Fatalf("second delete: exit %d: %s", code, errOut)
	}
}

func TestInventoryAddValidation(t *testing.T) {
	h := newHarness(t)

	code, _, errOut := h.exec("", "inventory", "add", "-name", "No SKU")
	if code != 1 || !strings.Contains(errOut, "sku") {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	code, _, errOut = h.exec("", "inventory", "add", "-name", "X", "-sku", "X-1", "-price", "cheap")
	if code != 1 || !strings.Contains(errOut, "price") {
		t.Fatalf("exit %d: %s", code, errOut)
	}
}

func TestTemplateExportImport(t *testing.T) {
	h := newHarness(t)
	dir := t.TempDir()
	tpl := filepath.Join(dir, "template.xlsx")

	if code, _, errOut := h.exec("", "inventory", "template", tpl); code != 0 {
		t.Fatalf("template: exit %d: %s", code, errOut)
	}
	code, out, errOut := h.exec("", "inventory", "import", tpl)
	if code != 0 {
		t.Fatalf("import: exit %d: %s", code, errOut)
	}
	if !strings.Contains(out, "Imported 3 rows") {
		t.Fatalf("import summary:\n%s", out)
	}

	export := filepath.Join(dir, "inventory.xlsx")
	if code, _, errOut := h.exec("", "inventory", "export", export); code != 0 {
		t.Fatalf("export: exit %d: %s", code, errOut)
	}
	if fi, err := os.Stat(export); err != nil || fi.Size() == 0 {
		t.Fatalf("export file: %v", err)
	}
}

func TestSuppliers(t *testing.T) {
	h := newHarness(t)

	_, out, _ := h.exec("", "suppliers", "list", "-status", "inactive")
	if !strings.Contains(out, "City Paper Co") || strings.Contains(out, "Green Valley Farms") {
		t.Fatalf("status filter:\n%s", out)
	}

	code, _, errOut := h.exec("", "suppliers", "add", "-name", "Dairy Co", "-contact", "Ram", "-email", "not-an-email", "-phone", "1")
	if code != 1 || !strings.Contains(errOut, "email") {
		t.Fatalf("invalid email: exit %d: %s", code, errOut)
	}
	code, _, errOut = h.exec("", "suppliers", "add", "-name", "Dairy Co", "-contact", "Ram", "-email", "ram@dairy.test", "-phone", "1")
	if code != 0 {
		t.Fatalf("add: exit %d: %s", code, errOut)
	}
	_, out, _ = h.exec("", "suppliers", "list", "-q", "dairy")
	if !strings.Contains(out, "Dairy Co") || !strings.Contains(out, "Active") {
		t.Fatalf("added supplier not listed:\n%s", out)
	}
}

func TestSalesRecordAndSummary(t *testing.T) {
	h := newHarness(t)

	code, out, errOut := h.exec("", "sales", "record", "-item", "1", "-qty", "2")
	if code != 0 {
		t.Fatalf("record: exit %d: %s", code, errOut)
	}
	if !strings.Contains(out, "$241.00") {
		t.Fatalf("record output:\n%s", out)
	}

	code, _, errOut = h.exec("", "sales", "record", "-item", "1", "-qty", "50")
	if code != 1 || !strings.Contains(errOut, "quantity") {
		t.Fatalf("oversell: exit %d: %s", code, errOut)
	}

	_, out, _ = h.exec("", "sales", "list")
	if !strings.Contains(out, "Tomatoes") {
		t.Fatalf("sales list:\n%s", out)
	}
	_, out, _ = h.exec("", "sales", "summary")
	if !strings.Contains(out, "$241.00") {
		t.Fatalf("summary:\n%s", out)
	}
}

func TestReports(t *testing.T) {
	h := newHarness(t)

	code, out, errOut := h.exec("", "reports", "dashboard")
	if code != 0 {
		t.Fatalf("dashboard: exit %d: %s", code, errOut)
	}
	if !strings.Contains(out, "Tomatoes") || strings.Contains(out, "Orange Juice") {
		t.Fatalf("dashboard low-stock list:\n%s", out)
	}

	path := filepath.Join(t.TempDir(), "sales.xlsx")
	if code, _, errOut := h.exec("", "reports", "sales", "-period", "monthly", "-out", path); code != 0 {
		t.Fatalf("sales report: exit %d: %s", code, errOut)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatal(err)
	}

	code, _, errOut = h.exec("", "reports", "sales", "-period", "yearly")
	if code != 1 || !strings.Contains(errOut, "period") {
		t.Fatalf("bad period: exit %d: %s", code, errOut)
	}
}

func TestSessionCommands(t *testing.T) {
	h := newHarness(t)

	_, out, _ := h.exec("", "whoami")
	if !strings.Contains(out, stubapitest.Username) || !strings.Contains(out, "valid") {
		t.Fatalf("whoami:\n%s", out)
	}

	if code, _, _ := h.exec("", "logout"); code != 0 {
		t.Fatal("logout failed")
	}
	code, _, errOut := h.exec("", "whoami")
	if code != 1 || !strings.Contains(errOut, "not logged in") {
		t.Fatalf("whoami after logout: exit %d: %s", code, errOut)
	}
	code, _, errOut = h.exec("", "inventory", "list")
	if code != 1 || !strings.Contains(errOut, "401") {
		t.Fatalf("list after logout: exit %d: %s", code, errOut)
	}

	code, _, errOut = h.exec("", "login", "-u", stubapitest.Username, "-p", "wrong")
	if code != 1 || !strings.Contains(errOut, "invalid username or password") {
		t.Fatalf("bad password: exit %d: %s", code, errOut)
	}
	if code, _, errOut := h.exec("", "login", "-u", stubapitest.Username, "-p", stubapitest.Password); code != 0 {
		t.Fatalf("login: exit %d: %s", code, errOut)
	}
}

func TestUnknownCommand(t *testing.T) {
	h := newHarness(t)

	if code, _, _ := h.exec(""); code != 2 {
		t.Fatalf("no args: exit %d", code)
	}
	if code, _, errOut := h.exec("", "bake"); code != 2 || !strings.Contains(errOut, "unknown command") {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if code, _, errOut := h.exec("", "inventory", "bake"); code != 1 || !strings.Contains(errOut, "unknown inventory command") {
		t.Fatalf("exit %d: %s", code, errOut)
	}
}
