package repositories

import (
	"context"

	"github.com/rios0rios0/upgit/internal/domain/entities"
)

// AuthCallback is asked for a credential every time the remote at rawURL
// challenges the engine. It is called again with the same URL when the
// previous answer was rejected.
type AuthCallback func(
	rawURL string,
	usernameFromURL string,
	kinds entities.CredentialKinds,
) (entities.Credential, error)

// VersionControlRepository abstracts the engine that brings one local clone up to date.
// Every failure is folded into the returned outcome, so one clone can never stop the others.
type VersionControlRepository interface {
	Update(
		ctx context.Context,
		clonePath string,
		opts entities.UpdateOptions,
		auth AuthCallback,
	) entities.Upgit
}
