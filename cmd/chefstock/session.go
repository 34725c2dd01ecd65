package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yuditriaji/chefstock/pkg/apiclient"
)

func (a *app) login(ctx context.Context, args []string) error {
	fs := a.flags("login")
	username := fs.String("u", "", "username")
	password := fs.String("p", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.auth.Login(ctx, *username, *password); err != nil {
		if apiclient.IsUnauthorized(err) {
			return errors.New("invalid username or password")
		}
		return err
	}
	fmt.Fprintf(a.out, "Logged in as %s\n", *username)
	return nil
}

func (a *app) logout(ctx context.Context, args []string) error {
	if err := a.flags("logout").Parse(args); err != nil {
		return err
	}
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *app) whoami(ctx context.Context, args []string) error {
	if err := a.flags("whoami").Parse(args); err != nil {
		return err
	}
	claims, err := a.auth.WhoAmI(ctx)
	if err != nil {
		return err
	}
	name := claims.Username
	if name == "" {
		name = placeholder
	}
	fmt.Fprintf(a.out, "User:    %s (id %s)\n", name, orNA(claims.UserID))
	if claims.ExpiresAt.IsZero() {
		fmt.Fprintln(a.out, "Expires: never")
		return nil
	}
	state := "valid"
	if claims.Expired(time.Now()) {
		state = "expired"
	}
	fmt.Fprintf(a.out, "Expires: %s (%s)\n", claims.ExpiresAt.Local().Format(time.RFC1123), state)
	return nil
}
