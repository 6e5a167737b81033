package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kpetrova/oracle/internal/models"
)

func acc(id string, credits int, friends ...string) models.Account {
	return models.Account{ID: id, Name: id, Credits: credits, Friends: friends}
}

func ids(accounts []models.Account) []string {
	out := make([]string, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, a.ID)
	}
	return out
}

func TestByCredits_DescendingStable(t *testing.T) {
	in := []models.Account{acc("a", 5), acc("b", 10), acc("c", 5), acc("d", 7)}

	got := ByCredits(in)

	assert.Equal(t, []string{"b", "d", "a", "c"}, ids(got))
	// input untouched
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(in))
}

func TestFriendCircle_ViewerPlusDirectedFriends(t *testing.T) {
	viewer := acc("me", 3, "f1", "f2")
	all := []models.Account{
		acc("other", 100),        // not a friend, excluded
		acc("f1", 10),
		viewer,
		acc("f2", 50),
		acc("admirer", 99, "me"), // lists viewer, but viewer does not list back
	}

	got := FriendCircle(viewer, all)

	assert.Equal(t, []string{"f2", "f1", "me"}, ids(got))
}

func TestFriendCircle_DanglingFriendTolerated(t *testing.T) {
	viewer := acc("me", 1, "ghost")
	all := []models.Account{viewer}

	got := FriendCircle(viewer, all)

	require.Len(t, got, 1)
	assert.Equal(t, "me", got[0].ID)
}

func att(session string, score, timeTaken int) models.QuizAttempt {
	return models.QuizAttempt{SessionID: session, Score: score, TimeTaken: timeTaken}
}

func TestSessionRankings_ScoreDescTimeAsc(t *testing.T) {
	attempts := []models.QuizAttempt{
		att("S", 80, 120),
		att("S", 90, 300),
		att("S", 90, 100),
	}

	got := SessionRankings(attempts, "S")

	require.Len(t, got, 3)
	assert.Equal(t, 90, got[0].Score)
	assert.Equal(t, 100, got[0].TimeTaken)
	assert.Equal(t, 90, got[1].Score)
	assert.Equal(t, 300, got[1].TimeTaken)
	assert.Equal(t, 80, got[2].Score)
}

func TestSessionRankings_FiltersBySession(t *testing.T) {
	attempts := []models.QuizAttempt{
		att("S", 50, 10),
		att("other", 99, 1),
	}

	got := SessionRankings(attempts, "S")

	require.Len(t, got, 1)
	assert.Equal(t, 50, got[0].Score)
}

func TestSessionRankings_NoMatchesIsEmpty(t *testing.T) {
	got := SessionRankings(nil, "S")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
