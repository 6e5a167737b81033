// Package services contains the application services of the Oracle local
// storage layer. This file defines the account directory: signup/login/logout,
// the session pointer, credits, the friend graph, and the quiz-attempt ledger.
package services

import (
	"context"
	"encoding/base64"
	"time"

	"github.com/google/uuid"

	"github.com/kpetrova/oracle/internal/common"
	"github.com/kpetrova/oracle/internal/flatstore"
	"github.com/kpetrova/oracle/internal/logging"
	"github.com/kpetrova/oracle/internal/models"
	"github.com/kpetrova/oracle/internal/ranking"
)

// timeNow is a test seam for timestamping.
var timeNow = time.Now

// DirectoryService defines the account directory operations.
//
// Contract:
//   - Signup/Login: create or authenticate an account and set the session
//     pointer to its redacted record.
//   - Logout: clear the session pointer unconditionally.
//   - GetCurrentUser: the session pointer's record, or nil when logged out.
//   - AddCredits/AddFriend/RemoveFriend: mutate the active account, write the
//     whole table back, and refresh the session pointer.
//   - SaveQuizAttempt: append to the global ledger, attributed to the active
//     account at save time.
//
// Errors are sentinels from the common package, matched with errors.Is.
// All methods must honor context cancellation/timeouts.
type DirectoryService interface {
	Signup(ctx context.Context, email, password, name string) (*models.Account, error)
	Login(ctx context.Context, email, password string) (*models.Account, error)
	Logout(ctx context.Context) error
	GetCurrentUser(ctx context.Context) (*models.Account, error)
	AddCredits(ctx context.Context, amount int) (*models.Account, error)
	GetAllUsers(ctx context.Context) ([]models.Account, error)
	AddFriend(ctx context.Context, friendID string) error
	RemoveFriend(ctx context.Context, friendID string) error
	GetFriends(ctx context.Context) ([]models.Account, error)
	GetFriendCircleRanking(ctx context.Context) ([]models.Account, error)
	SaveQuizAttempt(ctx context.Context, attempt models.QuizAttempt) (*models.QuizAttempt, error)
	GetQuizAttempts(ctx context.Context, userID string) ([]models.QuizAttempt, error)
	GetSessionRankings(ctx context.Context, sessionID string) ([]models.QuizAttempt, error)
}

// directoryService is the concrete DirectoryService backed by the flat
// record store.
type directoryService struct {
	store flatstore.Store
	log   logging.Logger

	// authLatency delays signup and login to mimic a remote roundtrip.
	// A UX artifact, zero by default.
	authLatency time.Duration
}

// NewDirectoryService constructs a DirectoryService bound to the given store.
func NewDirectoryService(store flatstore.Store, log logging.Logger, authLatency time.Duration) DirectoryService {
	return &directoryService{store: store, log: log, authLatency: authLatency}
}

// obfuscate encodes a password for storage. This is the btoa-style
// obfuscation the data format requires, deliberately not a hash.
func obfuscate(password string) string {
	return base64.StdEncoding.EncodeToString([]byte(password))
}

func (d *directoryService) sleepAuthLatency(ctx context.Context) error {
	if d.authLatency <= 0 {
		return nil
	}
	timer := time.NewTimer(d.authLatency)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *directoryService) readAccounts(ctx context.Context) ([]models.Account, error) {
	return flatstore.ReadAll[models.Account](ctx, d.store, flatstore.TableAccounts)
}

func (d *directoryService) writeAccounts(ctx context.Context, accounts []models.Account) error {
	return flatstore.WriteAll(ctx, d.store, flatstore.TableAccounts, accounts)
}

// setSession overwrites the session pointer with the redacted record.
func (d *directoryService) setSession(ctx context.Context, account models.Account) error {
	return flatstore.WriteAll(ctx, d.store, flatstore.TableSession, []models.Account{account.Redacted()})
}

// Signup creates a new account with zero credits and an empty friend list,
// persists it, and makes it the active session. Fails with
// common.ErrDuplicateAccount if the email is already registered.
func (d *directoryService) Signup(ctx context.Context, email, password, name string) (*models.Account, error) {
	if err := d.sleepAuthLatency(ctx); err != nil {
		return nil, err
	}

	accounts, err := d.readAccounts(ctx)
	if err != nil {
		return nil, err
	}

	for _, a := range accounts {
		if a.Email == email {
			return nil, common.ErrDuplicateAccount
		}
	}

	account := models.Account{
		ID:       uuid.NewString(),
		Email:    email,
		Name:     name,
		Password: obfuscate(password),
		Friends:  []string{},
		Credits:  0,
	}

	accounts = append(accounts, account)
	if err := d.writeAccounts(ctx, accounts); err != nil {
		return nil, err
	}
	if err := d.setSession(ctx, account); err != nil {
		return nil, err
	}

	d.log.Info(ctx, "account created", "id", account.ID)

	redacted := account.Redacted()
	return &redacted, nil
}

// Login authenticates by exact match on email and obfuscated password and
// makes the matching account the active session. Legacy records without a
// credit balance read as zero.
func (d *directoryService) Login(ctx context.Context, email, password string) (*models.Account, error) {
	if err := d.sleepAuthLatency(ctx); err != nil {
		return nil, err
	}

	accounts, err := d.readAccounts(ctx)
	if err != nil {
		return nil, err
	}

	obfuscated := obfuscate(password)
	for _, a := range accounts {
		if a.Email == email && a.Password == obfuscated {
			if err := d.setSession(ctx, a); err != nil {
				return nil, err
			}
			d.log.Info(ctx, "login", "id", a.ID)
			redacted := a.Redacted()
			return &redacted, nil
		}
	}
	return nil, common.ErrInvalidCredentials
}

// Logout clears the session pointer. Calling it with no active session is
// not an error.
func (d *directoryService) Logout(ctx context.Context) error {
	return flatstore.WriteAll[models.Account](ctx, d.store, flatstore.TableSession, nil)
}

// GetCurrentUser returns the session pointer's record, or nil when nobody is
// logged in.
func (d *directoryService) GetCurrentUser(ctx context.Context) (*models.Account, error) {
	session, err := flatstore.ReadAll[models.Account](ctx, d.store, flatstore.TableSession)
	if err != nil {
		return nil, err
	}
	if len(session) == 0 {
		return nil, nil
	}
	return &session[0], nil
}

// AddCredits adds amount to the active account's balance, writes the account
// table back, and mirrors the new value into the session pointer. The sign of
// amount is not checked; a negative delta debits silently.
//
// The two writes are not atomic with each other: a crash between them can
// leave the pointer behind the table until the next refreshing operation.
func (d *directoryService) AddCredits(ctx context.Context, amount int) (*models.Account, error) {
	current, err := d.GetCurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, common.ErrNoActiveSession
	}

	accounts, err := d.readAccounts(ctx)
	if err != nil {
		return nil, err
	}

	newTotal := current.Credits + amount
	for i := range accounts {
		if accounts[i].ID == current.ID {
			accounts[i].Credits = newTotal
		}
	}
	if err := d.writeAccounts(ctx, accounts); err != nil {
		return nil, err
	}

	updated := *current
	updated.Credits = newTotal
	if err := d.setSession(ctx, updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// GetAllUsers returns every account with the password stripped, sorted
// descending by credits. Accounts with equal credits keep table order.
func (d *directoryService) GetAllUsers(ctx context.Context) ([]models.Account, error) {
	accounts, err := d.readAccounts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		accounts[i] = accounts[i].Redacted()
	}
	return ranking.ByCredits(accounts), nil
}

// mutateActive loads the account table, applies fn to the active account's
// row, writes the table back, and refreshes the session pointer from the
// mutated row.
func (d *directoryService) mutateActive(ctx context.Context, fn func(a *models.Account)) error {
	current, err := d.GetCurrentUser(ctx)
	if err != nil {
		return err
	}
	if current == nil {
		return common.ErrNoActiveSession
	}

	accounts, err := d.readAccounts(ctx)
	if err != nil {
		return err
	}

	var self *models.Account
	for i := range accounts {
		if accounts[i].ID == current.ID {
			fn(&accounts[i])
			self = &accounts[i]
		}
	}
	if err := d.writeAccounts(ctx, accounts); err != nil {
		return err
	}
	if self != nil {
		return d.setSession(ctx, *self)
	}
	// dangling session pointer: nothing in the table to mutate, keep the
	// pointer as-is
	return nil
}

// AddFriend appends friendID to the active account's friend list if not
// already present. The id is not checked against the account table; a
// dangling reference is allowed.
func (d *directoryService) AddFriend(ctx context.Context, friendID string) error {
	return d.mutateActive(ctx, func(a *models.Account) {
		if !a.HasFriend(friendID) {
			a.Friends = append(a.Friends, friendID)
		}
	})
}

// RemoveFriend drops friendID from the active account's friend list. The
// reverse edge, if any, stays.
func (d *directoryService) RemoveFriend(ctx context.Context, friendID string) error {
	return d.mutateActive(ctx, func(a *models.Account) {
		friends := a.Friends[:0]
		for _, f := range a.Friends {
			if f != friendID {
				friends = append(friends, f)
			}
		}
		a.Friends = friends
	})
}

// GetFriends resolves the active account's friend ids against GetAllUsers,
// so the result comes back in credit-descending order rather than insertion
// order. Ids with no matching account are dropped. With no active session
// the list is empty.
func (d *directoryService) GetFriends(ctx context.Context) ([]models.Account, error) {
	current, err := d.GetCurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if current == nil || len(current.Friends) == 0 {
		return []models.Account{}, nil
	}

	all, err := d.GetAllUsers(ctx)
	if err != nil {
		return nil, err
	}

	friends := make([]models.Account, 0, len(current.Friends))
	for _, a := range all {
		if current.HasFriend(a.ID) {
			friends = append(friends, a)
		}
	}
	return friends, nil
}

// GetFriendCircleRanking ranks the viewer together with the accounts the
// viewer lists as friends, credits descending. One-directional: accounts
// listing the viewer back do not appear unless listed in return.
func (d *directoryService) GetFriendCircleRanking(ctx context.Context) ([]models.Account, error) {
	current, err := d.GetCurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return []models.Account{}, nil
	}

	accounts, err := d.readAccounts(ctx)
	if err != nil {
		return nil, err
	}

	// resolve the viewer from the table so the friend list is fresh even if
	// the pointer is stale; fall back to the pointer on a dangling id
	viewer := *current
	for i := range accounts {
		accounts[i] = accounts[i].Redacted()
		if accounts[i].ID == current.ID {
			viewer = accounts[i]
		}
	}
	return ranking.FriendCircle(viewer, accounts), nil
}

// SaveQuizAttempt appends one row to the global attempt ledger, attributed to
// the active account. Id and timestamp are assigned here; the ledger is never
// rewritten afterwards.
func (d *directoryService) SaveQuizAttempt(ctx context.Context, attempt models.QuizAttempt) (*models.QuizAttempt, error) {
	current, err := d.GetCurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, common.ErrNoActiveSession
	}

	attempt.ID = uuid.NewString()
	attempt.UserID = current.ID
	attempt.UserName = current.Name
	attempt.Timestamp = timeNow().UnixMilli()

	attempts, err := flatstore.ReadAll[models.QuizAttempt](ctx, d.store, flatstore.TableAttempts)
	if err != nil {
		return nil, err
	}
	attempts = append(attempts, attempt)
	if err := flatstore.WriteAll(ctx, d.store, flatstore.TableAttempts, attempts); err != nil {
		return nil, err
	}
	return &attempt, nil
}

// GetQuizAttempts returns the ledger in append order, filtered to one user
// when userID is non-empty.
func (d *directoryService) GetQuizAttempts(ctx context.Context, userID string) ([]models.QuizAttempt, error) {
	attempts, err := flatstore.ReadAll[models.QuizAttempt](ctx, d.store, flatstore.TableAttempts)
	if err != nil {
		return nil, err
	}
	if userID == "" {
		return attempts, nil
	}

	filtered := make([]models.QuizAttempt, 0, len(attempts))
	for _, a := range attempts {
		if a.UserID == userID {
			filtered = append(filtered, a)
		}
	}
	return filtered, nil
}

// GetSessionRankings ranks the ledger rows of one quiz session: score
// descending, faster completion first on ties.
func (d *directoryService) GetSessionRankings(ctx context.Context, sessionID string) ([]models.QuizAttempt, error) {
	attempts, err := flatstore.ReadAll[models.QuizAttempt](ctx, d.store, flatstore.TableAttempts)
	if err != nil {
		return nil, err
	}
	return ranking.SessionRankings(attempts, sessionID), nil
}
