package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// SaveSession archives a study session for the active account. Sources and
// guide are pasted as JSON and stored untouched.
func (a *App) SaveSession(ctx context.Context) error {
	sources, err := GetMultiline(a.reader, "Paste sources JSON", os.Stdout)
	if err != nil {
		return err
	}
	guide, err := GetMultiline(a.reader, "Paste guide JSON", os.Stdout)
	if err != nil {
		return err
	}

	id, err := a.history.SaveStudySession(ctx, json.RawMessage(sources), json.RawMessage(guide))
	if err != nil {
		a.log.Error(ctx, "save session failed", "err", err)
		return err
	}
	fmt.Println("Archived session", id)
	return nil
}

// History lists the active account's archived sessions, newest first.
func (a *App) History(ctx context.Context) error {
	current, err := a.directory.GetCurrentUser(ctx)
	if err != nil {
		return err
	}
	if current == nil {
		fmt.Println("Not logged in")
		return nil
	}

	history, err := a.history.GetStudyHistory(ctx, current.ID)
	if err != nil {
		return err
	}
	if len(history) == 0 {
		fmt.Println("No archived sessions")
		return nil
	}
	for _, s := range history {
		when := time.UnixMilli(s.Timestamp).Format("2006-01-02 15:04")
		claimed := ""
		if s.RewardClaimed {
			claimed = "  [reward claimed]"
		}
		fmt.Printf("%s  %s%s\n", when, s.ID, claimed)
	}
	return nil
}

// ClaimReward marks one archived session's reward as claimed and credits the
// account.
func (a *App) ClaimReward(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Session id", os.Stdout)
	if err != nil {
		return err
	}

	current, err := a.directory.GetCurrentUser(ctx)
	if err != nil {
		return err
	}
	if current == nil {
		fmt.Println("Not logged in")
		return nil
	}

	history, err := a.history.GetStudyHistory(ctx, current.ID)
	if err != nil {
		return err
	}
	for _, s := range history {
		if s.ID != id {
			continue
		}
		if s.RewardClaimed {
			fmt.Println("Reward already claimed")
			return nil
		}
		s.RewardClaimed = true
		if err := a.history.UpdateStudySession(ctx, s); err != nil {
			return err
		}
		updated, err := a.directory.AddCredits(ctx, 10)
		if err != nil {
			return err
		}
		fmt.Printf("Reward claimed, balance %d credits\n", updated.Credits)
		return nil
	}
	fmt.Println("No such session:", id)
	return nil
}

// DeleteSession removes an archived session by id.
func (a *App) DeleteSession(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Session id", os.Stdout)
	if err != nil {
		return err
	}
	if err := a.history.DeleteStudySession(ctx, id); err != nil {
		a.log.Error(ctx, "delete session failed", "err", err)
		return err
	}
	fmt.Println("Deleted")
	return nil
}
