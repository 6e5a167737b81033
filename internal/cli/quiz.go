package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/kpetrova/oracle/internal/models"
)

// RecordAttempt interactively records one quiz result into the global ledger.
func (a *App) RecordAttempt(ctx context.Context) error {
	sessionID, err := getSimpleText(a.reader, "Study session id", os.Stdout)
	if err != nil {
		return err
	}
	title, err := getSimpleText(a.reader, "Quiz title", os.Stdout)
	if err != nil {
		return err
	}
	scoreText, err := getSimpleText(a.reader, "Score", os.Stdout)
	if err != nil {
		return err
	}
	score, err := strconv.Atoi(scoreText)
	if err != nil {
		fmt.Println("Not a number:", scoreText)
		return err
	}
	timeText, err := getSimpleText(a.reader, "Time taken (seconds)", os.Stdout)
	if err != nil {
		return err
	}
	timeTaken, err := strconv.Atoi(timeText)
	if err != nil {
		fmt.Println("Not a number:", timeText)
		return err
	}

	saved, err := a.directory.SaveQuizAttempt(ctx, models.QuizAttempt{
		SessionID: sessionID,
		QuizTitle: title,
		Score:     score,
		TimeTaken: timeTaken,
	})
	if err != nil {
		a.log.Error(ctx, "save attempt failed", "err", err)
		return err
	}
	fmt.Println("Recorded attempt", saved.ID)
	return nil
}

// Attempts prints the active account's ledger rows, oldest first.
func (a *App) Attempts(ctx context.Context) error {
	current, err := a.directory.GetCurrentUser(ctx)
	if err != nil {
		return err
	}
	userID := ""
	if current != nil {
		userID = current.ID
	}

	attempts, err := a.directory.GetQuizAttempts(ctx, userID)
	if err != nil {
		return err
	}
	if len(attempts) == 0 {
		fmt.Println("No attempts yet")
		return nil
	}
	for _, att := range attempts {
		when := time.UnixMilli(att.Timestamp).Format("2006-01-02 15:04")
		fmt.Printf("%s  %-24s score=%d (%.0f%%) in %ds\n",
			when, att.QuizTitle, att.Score, att.Percentage, att.TimeTaken)
	}
	return nil
}

// Rankings prints the leaderboard of one study session's quiz: best score
// first, faster completion breaking ties.
func (a *App) Rankings(ctx context.Context) error {
	sessionID, err := getSimpleText(a.reader, "Study session id", os.Stdout)
	if err != nil {
		return err
	}

	ranked, err := a.directory.GetSessionRankings(ctx, sessionID)
	if err != nil {
		return err
	}
	if len(ranked) == 0 {
		fmt.Println("No attempts for this session")
		return nil
	}
	for i, att := range ranked {
		fmt.Printf("%2d. %-20s score=%d in %ds\n", i+1, att.UserName, att.Score, att.TimeTaken)
	}
	return nil
}
