package docstore

import (
	"context"

	"github.com/kpetrova/oracle/internal/models"
)

// Repository is the document-store contract consumed by the service layer.
// *Store satisfies it; tests can substitute a lightweight fake.
type Repository interface {
	Add(ctx context.Context, session models.StudySession) error
	Put(ctx context.Context, session models.StudySession) error
	GetAll(ctx context.Context) ([]models.StudySession, error)
	Delete(ctx context.Context, id string) error
}
