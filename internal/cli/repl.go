package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	AddCredits(ctx context.Context) error
	Leaderboard(ctx context.Context) error
	AddFriend(ctx context.Context) error
	RemoveFriend(ctx context.Context) error
	Friends(ctx context.Context) error
	Circle(ctx context.Context) error
	RecordAttempt(ctx context.Context) error
	Attempts(ctx context.Context) error
	Rankings(ctx context.Context) error
	SaveSession(ctx context.Context) error
	History(ctx context.Context) error
	ClaimReward(ctx context.Context) error
	DeleteSession(ctx context.Context) error
	Seed(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the Oracle CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("oracle> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, credits, users, friends, addfriend, rmfriend, circle, attempt, attempts, rankings, save, history, claim, rmsession, logout, exit")
			} else {
				printlnFn("Available commands: signup, login, users, seed, exit")
			}

		case "signup":
			_ = a.Signup(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "credits":
			_ = a.AddCredits(ctx)

		case "users":
			_ = a.Leaderboard(ctx)

		case "addfriend":
			_ = a.AddFriend(ctx)

		case "rmfriend":
			_ = a.RemoveFriend(ctx)

		case "friends":
			_ = a.Friends(ctx)

		case "circle":
			_ = a.Circle(ctx)

		case "attempt":
			_ = a.RecordAttempt(ctx)

		case "attempts":
			_ = a.Attempts(ctx)

		case "rankings":
			_ = a.Rankings(ctx)

		case "save":
			_ = a.SaveSession(ctx)

		case "history":
			_ = a.History(ctx)

		case "claim":
			_ = a.ClaimReward(ctx)

		case "rmsession":
			_ = a.DeleteSession(ctx)

		case "seed":
			_ = a.Seed(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
