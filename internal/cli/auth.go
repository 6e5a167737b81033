package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/kpetrova/oracle/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Signup prompts for email, name and password and creates a new account.
// The new account becomes the active session. The password byte slice is
// wiped before returning.
func (a *App) Signup(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	name, err := getSimpleText(a.reader, "Enter display name", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	account, err := a.directory.Signup(ctx, email, string(password), name)
	if err != nil {
		a.log.Error(ctx, "signup failed", "err", err)
		return err
	}

	a.userName = account.Name
	fmt.Printf("Welcome, %s! Your academic id is %s\n", account.Name, account.ID)
	return nil
}

// Login prompts for credentials and makes the matching account the active
// session.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	account, err := a.directory.Login(ctx, email, string(password))
	if err != nil {
		a.log.Error(ctx, "login failed", "err", err)
		return err
	}

	a.userName = account.Name
	fmt.Printf("Welcome back, %s (%d credits)\n", account.Name, account.Credits)
	return nil
}

// Logout clears the persisted session pointer and the cached prompt name.
func (a *App) Logout(ctx context.Context) error {
	if err := a.directory.Logout(ctx); err != nil {
		return err
	}
	a.userName = ""
	fmt.Println("Logged out")
	return nil
}

// Whoami prints the active account, if any.
func (a *App) Whoami(ctx context.Context) error {
	current, err := a.directory.GetCurrentUser(ctx)
	if err != nil {
		return err
	}
	if current == nil {
		fmt.Println("Not logged in")
		return nil
	}
	fmt.Printf("%s <%s> id=%s credits=%d friends=%d\n",
		current.Name, current.Email, current.ID, current.Credits, len(current.Friends))
	return nil
}
