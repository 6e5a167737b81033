package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/brianvoe/gofakeit/v6"
)

// Seed creates a handful of demo accounts with random names, emails and
// credit balances. Handy for trying out leaderboards on a fresh database.
// The active session is left untouched.
func (a *App) Seed(ctx context.Context) error {
	text, err := getSimpleText(a.reader, "How many demo accounts?", os.Stdout)
	if err != nil {
		return err
	}
	n, err := strconv.Atoi(text)
	if err != nil || n <= 0 {
		fmt.Println("Not a positive number:", text)
		return err
	}

	current, _ := a.directory.GetCurrentUser(ctx)

	for i := 0; i < n; i++ {
		name := gofakeit.Name()
		account, err := a.directory.Signup(ctx, gofakeit.Email(), gofakeit.Password(true, true, true, false, false, 10), name)
		if err != nil {
			// duplicate fake email, try the next one
			a.log.Warn(ctx, "seed signup failed", "err", err)
			continue
		}
		if _, err := a.directory.AddCredits(ctx, gofakeit.Number(0, 500)); err != nil {
			return err
		}
		fmt.Printf("Seeded %s (%s)\n", name, account.ID)
	}

	// signup switches the session pointer to each seeded account; clear it
	if err := a.directory.Logout(ctx); err != nil {
		return err
	}
	if current != nil {
		a.userName = ""
		fmt.Println("Seeding cleared your session, please log in again")
	}
	return nil
}
