package identity_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitecomments/internal/identity"
)

func TestHeaderProviderResolvesIdentity(t *testing.T) {
	provider := identity.NewHeaderProvider()

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(identity.HeaderUserID, "7")
	req.Header.Set(identity.HeaderUsername, "uma")
	req.Header.Set(identity.HeaderAvatarURL, "https://cdn/u.png")

	id, err := provider.CurrentUser(req)

	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, int64(7), id.ID)
	assert.Equal(t, "uma", id.Username)
	assert.Equal(t, "https://cdn/u.png", id.AvatarURL)
}

func TestHeaderProviderAnonymous(t *testing.T) {
	provider := identity.NewHeaderProvider()

	id, err := provider.CurrentUser(httptest.NewRequest("GET", "/", nil))

	require.NoError(t, err)
	assert.Nil(t, id)
}

func TestHeaderProviderBadUserID(t *testing.T) {
	provider := identity.NewHeaderProvider()

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(identity.HeaderUserID, "not-a-number")
	req.Header.Set(identity.HeaderUsername, "uma")

	_, err := provider.CurrentUser(req)

	assert.Error(t, err)
}

func TestStaticOracle(t *testing.T) {
	oracle := identity.NewStaticOracle("alice, bob ,")

	assert.True(t, oracle.CanDeleteAnyComment("alice"))
	assert.True(t, oracle.CanDeleteAnyComment("bob"))
	assert.False(t, oracle.CanDeleteAnyComment("mallory"))
}
