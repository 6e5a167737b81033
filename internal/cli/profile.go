package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
)

// AddCredits prompts for a delta and applies it to the active account.
// Negative values debit; the directory does not reject them.
func (a *App) AddCredits(ctx context.Context) error {
	text, err := getSimpleText(a.reader, "Credits to add", os.Stdout)
	if err != nil {
		return err
	}
	amount, err := strconv.Atoi(text)
	if err != nil {
		fmt.Println("Not a number:", text)
		return err
	}

	updated, err := a.directory.AddCredits(ctx, amount)
	if err != nil {
		a.log.Error(ctx, "add credits failed", "err", err)
		return err
	}
	fmt.Printf("Balance: %d credits\n", updated.Credits)
	return nil
}

// Leaderboard prints every account, best balance first.
func (a *App) Leaderboard(ctx context.Context) error {
	users, err := a.directory.GetAllUsers(ctx)
	if err != nil {
		return err
	}
	for i, u := range users {
		fmt.Printf("%2d. %-20s %5d credits  id=%s\n", i+1, u.Name, u.Credits, u.ID)
	}
	return nil
}

// AddFriend prompts for an academic id and adds it to the active account's
// circle. Adding an id twice is harmless.
func (a *App) AddFriend(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Friend's academic id", os.Stdout)
	if err != nil {
		return err
	}
	if err := a.directory.AddFriend(ctx, id); err != nil {
		a.log.Error(ctx, "add friend failed", "err", err)
		return err
	}
	fmt.Println("Added")
	return nil
}

// RemoveFriend drops an id from the active account's circle.
func (a *App) RemoveFriend(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Friend's academic id", os.Stdout)
	if err != nil {
		return err
	}
	if err := a.directory.RemoveFriend(ctx, id); err != nil {
		a.log.Error(ctx, "remove friend failed", "err", err)
		return err
	}
	fmt.Println("Removed")
	return nil
}

// Friends lists the resolved friend accounts, richest first.
func (a *App) Friends(ctx context.Context) error {
	friends, err := a.directory.GetFriends(ctx)
	if err != nil {
		return err
	}
	if len(friends) == 0 {
		fmt.Println("No friends yet")
		return nil
	}
	for _, f := range friends {
		fmt.Printf("%-20s %5d credits  id=%s\n", f.Name, f.Credits, f.ID)
	}
	return nil
}

// Circle prints the friend-circle leaderboard: the viewer plus everyone the
// viewer lists, ranked by credits.
func (a *App) Circle(ctx context.Context) error {
	circle, err := a.directory.GetFriendCircleRanking(ctx)
	if err != nil {
		return err
	}
	for i, u := range circle {
		marker := " "
		if u.Name == a.userName {
			marker = "*"
		}
		fmt.Printf("%2d.%s %-20s %5d credits\n", i+1, marker, u.Name, u.Credits)
	}
	return nil
}
