package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/yuditriaji/chefstock/internal/alerts"
	"github.com/yuditriaji/chefstock/internal/auth"
	"github.com/yuditriaji/chefstock/internal/inventory"
	"github.com/yuditriaji/chefstock/internal/reports"
	"github.com/yuditriaji/chefstock/internal/sales"
	"github.com/yuditriaji/chefstock/internal/supplier"
	"github.com/yuditriaji/chefstock/internal/view"
	"github.com/yuditriaji/chefstock/pkg/activitylog"
	"github.com/yuditriaji/chefstock/pkg/apiclient"
	"github.com/yuditriaji/chefstock/pkg/config"
	"github.com/yuditriaji/chefstock/pkg/credential"
	"github.com/yuditriaji/chefstock/pkg/storage"
	"github.com/yuditriaji/chefstock/pkg/validate"
	"go.uber.org/zap"
)

type app struct {
	cfg *config.Config
	log *zap.Logger

	auth      *auth.Service
	inventory *inventory.Service
	suppliers *supplier.Service
	sales     *sales.Service
	reports   *reports.Service

	out    io.Writer
	errOut io.Writer
	in     *bufio.Reader
}

type command func(ctx context.Context, args []string) error

func newApp(cfg *config.Config, log *zap.Logger, kv storage.KV, out, errOut io.Writer, in io.Reader) (*app, error) {
	store := credential.NewStore(kv)
	client, err := apiclient.New(cfg.API.BaseURL, store.Source(),
		apiclient.WithLogger(log.Named("api")),
		apiclient.WithTimeout(cfg.API.Timeout))
	if err != nil {
		return nil, err
	}
	audit := activitylog.NewLogger(log)

	return &app{
		cfg:       cfg,
		log:       log,
		auth:      auth.NewService(client, store, log),
		inventory: inventory.NewService(client, audit),
		suppliers: supplier.NewService(client, audit),
		sales:     sales.NewService(client, audit),
		reports:   reports.NewService(client),
		out:       out,
		errOut:    errOut,
		in:        bufio.NewReader(in),
	}, nil
}

func (a *app) commands() map[string]command {
	return map[string]command{
		"login":  a.login,
		"logout": a.logout,
		"whoami": a.whoami,
		"inventory": a.group("inventory", map[string]command{
			"list":     a.inventoryList,
			"add":      a.inventoryAdd,
			"update":   a.inventoryUpdate,
			"delete":   a.inventoryDelete,
			"restock":  a.inventoryRestock,
			"import":   a.inventoryImport,
			"export":   a.inventoryExport,
			"template": a.inventoryTemplate,
		}),
		"suppliers": a.group("suppliers", map[string]command{
			"list":   a.suppliersList,
			"add":    a.suppliersAdd,
			"update": a.suppliersUpdate,
			"delete": a.suppliersDelete,
		}),
		"sales": a.group("sales", map[string]command{
			"list":    a.salesList,
			"record":  a.salesRecord,
			"summary": a.salesSummary,
		}),
		"reports": a.group("reports", map[string]command{
			"dashboard": a.reportsDashboard,
			"low-stock": a.reportsLowStock,
			"sales":     a.reportsSales,
		}),
		"watch": a.watch,
	}
}

// run executes one command line and returns the process exit code. Errors
// become a single line on stderr.
func (a *app) run(ctx context.Context, args []string) int {
	cmds := a.commands()
	if len(args) == 0 {
		a.usage(cmds)
		return 2
	}
	cmd, ok := cmds[args[0]]
	if !ok {
		fmt.Fprintf(a.errOut, "chefstock: unknown command %q\n", args[0])
		a.usage(cmds)
		return 2
	}
	if err := cmd(ctx, args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		a.notify(err)
		return 1
	}
	return 0
}

func (a *app) usage(cmds map[string]command) {
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintf(a.errOut, "usage: chefstock <%s> [args]\n", strings.Join(names, "|"))
}

func (a *app) group(name string, sub map[string]command) command {
	return func(ctx context.Context, args []string) error {
		names := make([]string, 0, len(sub))
		for n := range sub {
			names = append(names, n)
		}
		sort.Strings(names)
		if len(args) == 0 {
			return fmt.Errorf("usage: chefstock %s <%s>", name, strings.Join(names, "|"))
		}
		cmd, ok := sub[args[0]]
		if !ok {
			return fmt.Errorf("unknown %s command %q (want one of %s)", name, args[0], strings.Join(names, ", "))
		}
		return cmd(ctx, args[1:])
	}
}

// notify prints the user-facing one-liner for a failed command.
func (a *app) notify(err error) {
	var (
		statusErr *apiclient.HTTPStatusError
		netErr    *apiclient.NetworkError
		parseErr  *apiclient.ParseError
		verr      *validate.ValidationError
	)
	msg := err.Error()
	switch {
	case errors.As(err, &verr):
	case errors.Is(err, credential.ErrNoCredential):
		msg = "not logged in; run chefstock login"
	case apiclient.IsUnauthorized(err):
		msg = "the server rejected your session (401); log in again"
	case errors.Is(err, view.ErrBusy):
	case errors.As(err, &statusErr):
		msg = fmt.Sprintf("request failed: %s", err)
	case errors.As(err, &netErr):
		msg = fmt.Sprintf("could not reach the server: %s", err)
	case errors.As(err, &parseErr):
		msg = fmt.Sprintf("unexpected response from the server: %s", err)
	}
	fmt.Fprintf(a.errOut, "chefstock: %s\n", msg)
}

// confirm asks a yes/no question on stdin; anything but y/yes is no.
func (a *app) confirm(prompt string) bool {
	fmt.Fprintf(a.out, "%s [y/N]: ", prompt)
	line, _ := a.in.ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func (a *app) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet("chefstock "+name, flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	return fs
}

// parseWithArg parses flags that may appear before or after one positional
// argument, as in "delete 4 -yes" or "delete -yes 4".
func parseWithArg(fs *flag.FlagSet, args []string, what string) (string, error) {
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		if err := fs.Parse(args[1:]); err != nil {
			return "", err
		}
		if fs.NArg() > 0 {
			return "", fmt.Errorf("unexpected argument %q", fs.Arg(0))
		}
		return args[0], nil
	}
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	if fs.NArg() != 1 {
		return "", fmt.Errorf("%s is required", what)
	}
	return fs.Arg(0), nil
}

func (a *app) watch(ctx context.Context, args []string) error {
	fs := a.flags("watch")
	every := fs.Duration("every", a.cfg.Watch.Interval, "poll interval")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *every <= 0 {
		return &validate.ValidationError{Field: "every", Message: "must be positive"}
	}

	w := alerts.NewWatcher(a.reports, *every, a.log)
	w.OnAlert = func(i inventory.Item) {
		fmt.Fprintf(a.out, "LOW STOCK  %s (%s): %d %s, minimum %d\n", i.Name, i.SKU, i.Quantity, i.Unit, i.MinStockLevel)
	}
	<-w.Start(ctx)
	return nil
}
