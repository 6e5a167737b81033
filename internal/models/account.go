// Package models defines the data records persisted by the Oracle local
// storage layer.
package models

// Account is a stored user record. The persisted form carries the obfuscated
// password; every record handed to callers has it stripped first.
type Account struct {
	// ID is assigned at signup and never changes.
	ID string `json:"id"`

	Email string `json:"email"`
	Name  string `json:"name"`

	// Password holds the obfuscated (base64, not hashed) password.
	// Empty on redacted copies. Obfuscation is a deliberate property of the
	// system: there is no server and no security boundary around this file.
	Password string `json:"password,omitempty"`

	// Friends is a directed adjacency list of account ids. A listing B does
	// not imply B listing A. Deduplicated on insert, otherwise unordered
	// guarantees beyond insertion order.
	Friends []string `json:"friends"`

	// Credits is the reward balance shown on leaderboards.
	Credits int `json:"credits"`
}

// Redacted returns a copy safe to hand to callers or store as the session
// pointer: same fields, password cleared.
func (a Account) Redacted() Account {
	a.Password = ""
	return a
}

// HasFriend reports whether id is already present in the friend list.
func (a Account) HasFriend(id string) bool {
	for _, f := range a.Friends {
		if f == id {
			return true
		}
	}
	return false
}
