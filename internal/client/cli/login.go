package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Login prompts for the user name and PIN and authenticates against the
// server. On success the authorized project codes are printed.
func (a *App) Login(ctx context.Context) error {
	user, err := GetSimpleText(a.reader, "Enter user name", os.Stdout)
	if err != nil {
		return err
	}

	pin, err := GetPIN(os.Stdout)
	if err != nil {
		return err
	}

	res, err := a.api.Login(ctx, user, string(pin))
	if err != nil {
		fmt.Println("Login failed:", err)
		return err
	}

	a.userName = res.Username
	fmt.Printf("Welcome %s. Authorized projects: %s\n", res.Username, strings.Join(res.Projects, ", "))
	return nil
}

// Logout drops the token and clears the local cache.
func (a *App) Logout(ctx context.Context) error {
	a.api.Logout()
	a.userName = ""
	if err := a.repos.Records.Clear(ctx); err != nil {
		return err
	}
	fmt.Println("Logged out")
	return nil
}
