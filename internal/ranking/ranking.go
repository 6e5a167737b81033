// Package ranking holds the pure leaderboard computations. Everything here
// operates on data already fetched from the stores; nothing in this package
// performs I/O.
package ranking

import (
	"sort"

	"github.com/kpetrova/oracle/internal/models"
)

// ByCredits returns accounts sorted descending by credits. Ties keep the
// input order. The input slice is not modified.
func ByCredits(accounts []models.Account) []models.Account {
	result := make([]models.Account, len(accounts))
	copy(result, accounts)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Credits > result[j].Credits
	})
	return result
}

// FriendCircle returns the viewer plus the viewer's directed friends, sorted
// descending by credits with ties keeping the order of all. This is a
// one-directional view: accounts that list the viewer back are excluded
// unless the viewer also lists them.
//
// Friend ids with no matching account are silently dropped; a dangling
// reference never fails the ranking.
func FriendCircle(viewer models.Account, all []models.Account) []models.Account {
	circle := make([]models.Account, 0, len(viewer.Friends)+1)
	for _, a := range all {
		if a.ID == viewer.ID || viewer.HasFriend(a.ID) {
			circle = append(circle, a)
		}
	}
	return ByCredits(circle)
}

// SessionRankings filters attempts to the given session and orders them:
// score descending, then timeTaken ascending (faster completion wins equal
// scores), stable otherwise.
func SessionRankings(attempts []models.QuizAttempt, sessionID string) []models.QuizAttempt {
	result := make([]models.QuizAttempt, 0)
	for _, a := range attempts {
		if a.SessionID == sessionID {
			result = append(result, a)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Score != result[j].Score {
			return result[i].Score > result[j].Score
		}
		return result[i].TimeTaken < result[j].TimeTaken
	})
	return result
}
