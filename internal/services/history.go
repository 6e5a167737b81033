package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/kpetrova/oracle/internal/common"
	"github.com/kpetrova/oracle/internal/docstore"
	"github.com/kpetrova/oracle/internal/logging"
	"github.com/kpetrova/oracle/internal/models"
)

// HistoryService manages the archive of generated study sessions kept in the
// document store. Guide and source payloads come from the content-generation
// service and pass through this layer untouched.
type HistoryService interface {
	SaveStudySession(ctx context.Context, sources, guide json.RawMessage) (string, error)
	GetStudyHistory(ctx context.Context, userID string) ([]models.StudySession, error)
	UpdateStudySession(ctx context.Context, session models.StudySession) error
	DeleteStudySession(ctx context.Context, id string) error
}

type historyService struct {
	docs      docstore.Repository
	directory DirectoryService
	log       logging.Logger
}

// NewHistoryService constructs a HistoryService over the given document
// repository. The directory supplies the active account for attribution.
func NewHistoryService(docs docstore.Repository, directory DirectoryService, log logging.Logger) HistoryService {
	return &historyService{docs: docs, directory: directory, log: log}
}

// SaveStudySession archives a new session for the active account: fresh id,
// current timestamp, reward unclaimed. Returns the new id.
func (s *historyService) SaveStudySession(ctx context.Context, sources, guide json.RawMessage) (string, error) {
	current, err := s.directory.GetCurrentUser(ctx)
	if err != nil {
		return "", err
	}
	if current == nil {
		return "", common.ErrNoActiveSession
	}

	session := models.StudySession{
		ID:            uuid.NewString(),
		UserID:        current.ID,
		Timestamp:     timeNow().UnixMilli(),
		Sources:       sources,
		Guide:         guide,
		RewardClaimed: false,
	}

	if err := s.docs.Add(ctx, session); err != nil {
		return "", fmt.Errorf("saving study session: %w", err)
	}

	s.log.Info(ctx, "study session archived", "id", session.ID, "user", session.UserID)
	return session.ID, nil
}

// GetStudyHistory returns the given user's sessions, most recent first.
// Linear in the total number of stored documents, which is fine for a
// process-local archive.
func (s *historyService) GetStudyHistory(ctx context.Context, userID string) ([]models.StudySession, error) {
	all, err := s.docs.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	history := make([]models.StudySession, 0, len(all))
	for _, session := range all {
		if session.UserID == userID {
			history = append(history, session)
		}
	}
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].Timestamp > history[j].Timestamp
	})
	return history, nil
}

// UpdateStudySession overwrites the stored record by id. The caller supplies
// the complete session, unchanged fields included.
func (s *historyService) UpdateStudySession(ctx context.Context, session models.StudySession) error {
	return s.docs.Put(ctx, session)
}

// DeleteStudySession removes the session by id; removing an absent id
// succeeds.
func (s *historyService) DeleteStudySession(ctx context.Context, id string) error {
	return s.docs.Delete(ctx, id)
}
