// Package identity supplies concrete IdentityProvider and
// PermissionOracle implementations. The session layer itself lives in
// front of this service; by the time a request arrives here the auth
// proxy has already verified the cookie and translated it into trusted
// headers.
package identity

import (
	"net/http"
	"strconv"
	"strings"

	"sitecomments/domain"
)

const (
	HeaderUserID    = "X-Auth-User-Id"
	HeaderUsername  = "X-Auth-Username"
	HeaderAvatarURL = "X-Auth-Avatar-Url"
)

// HeaderProvider reads the identity the auth proxy injected. A request
// without the headers is anonymous, not an error.
type HeaderProvider struct{}

var _ domain.IdentityProvider = (*HeaderProvider)(nil)

func NewHeaderProvider() *HeaderProvider {
	return &HeaderProvider{}
}

func (p *HeaderProvider) CurrentUser(r *http.Request) (*domain.Identity, error) {
	rawID := r.Header.Get(HeaderUserID)
	username := r.Header.Get(HeaderUsername)
	if rawID == "" || username == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return nil, err
	}
	return &domain.Identity{
		ID:        id,
		Username:  username,
		AvatarURL: r.Header.Get(HeaderAvatarURL),
	}, nil
}

// StaticOracle answers the moderator override from a fixed username
// list, configured via env.
type StaticOracle struct {
	moderators map[string]struct{}
}

var _ domain.PermissionOracle = (*StaticOracle)(nil)

// NewStaticOracle takes a comma-separated username list.
func NewStaticOracle(csv string) *StaticOracle {
	mods := make(map[string]struct{})
	for _, name := range strings.Split(csv, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			mods[name] = struct{}{}
		}
	}
	return &StaticOracle{moderators: mods}
}

func (o *StaticOracle) CanDeleteAnyComment(username string) bool {
	_, ok := o.moderators[username]
	return ok
}
