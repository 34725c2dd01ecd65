package main

import (
	"context"
	"flag"
	"fmt"
	"strconv"

	"github.com/yuditriaji/chefstock/internal/supplier"
)

type supplierForm struct {
	fs       *flag.FlagSet
	name     *string
	contact  *string
	email    *string
	phone    *string
	category *string
	location *string
	status   *string
	rating   *float64
}

func newSupplierForm(fs *flag.FlagSet) *supplierForm {
	return &supplierForm{
		fs:       fs,
		name:     fs.String("name", "", "supplier name"),
		contact:  fs.String("contact", "", "contact person"),
		email:    fs.String("email", "", "email address"),
		phone:    fs.String("phone", "", "phone number"),
		category: fs.String("category", "", "what the supplier delivers"),
		location: fs.String("location", "", "city or address"),
		status:   fs.String("status", "", "Active or Inactive"),
		rating:   fs.Float64("rating", 0, "rating from 0 to 5"),
	}
}

func (f *supplierForm) apply(s *supplier.Supplier) {
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "name":
			s.Name = *f.name
		case "contact":
			s.ContactPerson = *f.contact
		case "email":
			s.Email = *f.email
		case "phone":
			s.Phone = *f.phone
		case "category":
			s.Category = *f.category
		case "location":
			s.Location = *f.location
		case "status":
			s.Status = supplier.ParseStatus(*f.status)
		case "rating":
			s.Rating = *f.rating
		}
	})
}

func (a *app) loadSuppliers(ctx context.Context) (*supplier.Page, error) {
	page := supplier.NewPage(a.suppliers, a.log)
	if err := page.Refetch(ctx); err != nil {
		return nil, err
	}
	return page, nil
}

func (a *app) suppliersList(ctx context.Context, args []string) error {
	fs := a.flags("suppliers list")
	search := fs.String("q", "", "search name, contact or category")
	status := fs.String("status", "all", "all, active or inactive")
	if err := fs.Parse(args); err != nil {
		return err
	}
	page, err := a.loadSuppliers(ctx)
	if err != nil {
		return err
	}
	defer page.Close()
	page.Filter = supplier.Filter{Search: *search, Status: *status}

	suppliers := page.Visible()
	if len(suppliers) == 0 {
		fmt.Fprintln(a.out, "No suppliers found.")
		return nil
	}
	t := newTable(a.out, "ID", "NAME", "CONTACT", "EMAIL", "PHONE", "CATEGORY", "LOCATION", "RATING", "STATUS")
	for _, s := range suppliers {
		t.row(s.ID, s.Name, orNA(s.ContactPerson), orNA(s.Email), orNA(s.Phone),
			orNA(s.Category), orNA(s.Location), strconv.FormatFloat(s.Rating, 'f', 1, 64), string(s.Status))
	}
	if err := t.flush(); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "\n%d suppliers, %d active\n", len(suppliers), page.ActiveCount())
	return nil
}

func (a *app) suppliersAdd(ctx context.Context, args []string) error {
	fs := a.flags("suppliers add")
	form := newSupplierForm(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	s := supplier.NewSupplier()
	form.apply(&s)
	if err := supplier.ValidateSupplier(s); err != nil {
		return err
	}
	page := supplier.NewPage(a.suppliers, a.log)
	defer page.Close()
	if err := page.Save(ctx, s); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added supplier %s\n", s.Name)
	return nil
}

func (a *app) suppliersUpdate(ctx context.Context, args []string) error {
	fs := a.flags("suppliers update")
	form := newSupplierForm(fs)
	id, err := parseWithArg(fs, args, "supplier id")
	if err != nil {
		return err
	}
	page, err := a.loadSuppliers(ctx)
	if err != nil {
		return err
	}
	defer page.Close()
	s, ok := page.Find(id)
	if !ok {
		return fmt.Errorf("supplier %s not found", id)
	}
	form.apply(&s)
	if err := page.Save(ctx, s); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated supplier %s\n", s.Name)
	return nil
}

func (a *app) suppliersDelete(ctx context.Context, args []string) error {
	fs := a.flags("suppliers delete")
	yes := fs.Bool("yes", false, "do not ask for confirmation")
	id, err := parseWithArg(fs, args, "supplier id")
	if err != nil {
		return err
	}
	page, err := a.loadSuppliers(ctx)
	if err != nil {
		return err
	}
	defer page.Close()

	label := "supplier " + id
	if s, ok := page.Find(id); ok {
		label = s.Name
	}
	if !*yes && !a.confirm("Delete "+label+"?") {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}
	if err := page.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted %s\n", label)
	return nil
}
