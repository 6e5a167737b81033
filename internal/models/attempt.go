package models

// QuizAttempt is one row of the append-only global attempt ledger.
// Attempts are attributed to the active account at save time and are never
// updated or deleted afterwards.
type QuizAttempt struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	UserName  string `json:"userName"`
	SessionID string `json:"sessionId"`
	QuizTitle string `json:"quizTitle"`

	Score      int     `json:"score"`
	Percentage float64 `json:"percentage"`

	// TimeTaken is the completion time in seconds. On equal scores a faster
	// attempt ranks higher.
	TimeTaken int `json:"timeTaken"`

	// Timestamp is Unix milliseconds at save time.
	Timestamp int64 `json:"timestamp"`
}
