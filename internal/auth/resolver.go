package auth

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/iliyamo/mangify/internal/model"
	"github.com/iliyamo/mangify/internal/repository"
)

// ErrUnauthenticated is the uniform failure of session resolution. A
// malformed token, an expired token, a token without a subject and a token
// whose subject no longer exists all map to this single error so a caller
// probing the API cannot tell the cases apart.
var ErrUnauthenticated = errors.New("unauthenticated")

// SubjectStore loads stored subjects by id. *repository.UserRepo satisfies
// it; an absent subject must be reported as repository.ErrNotFound.
type SubjectStore interface {
	GetByID(ctx context.Context, id string) (model.User, error)
}

// SessionResolver turns a bearer token into the authenticated subject's
// live stored record.
type SessionResolver struct {
	codec *TokenCodec
	store SubjectStore
}

func NewSessionResolver(codec *TokenCodec, store SubjectStore) *SessionResolver {
	return &SessionResolver{codec: codec, store: store}
}

// Resolve decodes and validates the token as of now, then loads the subject
// from storage. Every authentication defect yields ErrUnauthenticated; the
// precise cause is only logged. Storage failures other than a missing
// subject propagate unchanged.
func (r *SessionResolver) Resolve(ctx context.Context, token string, now time.Time) (model.User, error) {
	subjectID, err := r.codec.Decode(token, now)
	if err != nil {
		log.Printf("auth: token rejected: %v", err)
		return model.User{}, ErrUnauthenticated
	}
	u, err := r.store.GetByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Printf("auth: token subject %s not found", subjectID)
			return model.User{}, ErrUnauthenticated
		}
		return model.User{}, err
	}
	return u, nil
}
