package domain

import "net/http"

// Identity is the verified caller handed in by the session layer once
// per request. The comment service never authenticates; it only makes
// authorization decisions against this value.
type Identity struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
}

// IdentityProvider resolves the caller of a request. A nil identity
// with a nil error means anonymous.
type IdentityProvider interface {
	CurrentUser(r *http.Request) (*Identity, error)
}

// PermissionOracle answers role-based overrides for moderators and the
// site owner.
type PermissionOracle interface {
	CanDeleteAnyComment(username string) bool
}
