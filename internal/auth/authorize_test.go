package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/mangify/internal/model"
)

func TestAuthorizeOwnAccount(t *testing.T) {
	authz := NewAuthorizer()
	owner := model.User{ID: "01H1VEC8S1T0000000000000AB", Role: model.RoleReader}

	assert.NoError(t, authz.Authorize(owner, owner, "update", "user"))
	assert.NoError(t, authz.Authorize(owner, owner, "delete", "user"))
}

func TestAuthorizeAdminOnAnyAccount(t *testing.T) {
	authz := NewAuthorizer()
	admin := model.User{ID: "01H1VEC8S1T0000000000000AA", Role: model.RoleAdmin}
	other := model.User{ID: "01H1VEC8S1T0000000000000AB", Role: model.RoleReader}

	assert.NoError(t, authz.Authorize(admin, other, "update", "user"))
	assert.NoError(t, authz.Authorize(admin, other, "delete", "user"))
}

func TestAuthorizeOtherReaderDenied(t *testing.T) {
	authz := NewAuthorizer()
	reader := model.User{ID: "01H1VEC8S1T0000000000000AA", Role: model.RoleReader}
	other := model.User{ID: "01H1VEC8S1T0000000000000AB", Role: model.RoleReader}

	assert.ErrorIs(t, authz.Authorize(reader, other, "update", "user"), ErrForbidden)
	assert.ErrorIs(t, authz.Authorize(reader, other, "delete", "user"), ErrForbidden)
}

func TestAuthorizeUnlistedActionDenied(t *testing.T) {
	authz := NewAuthorizer()
	owner := model.User{ID: "01H1VEC8S1T0000000000000AB", Role: model.RoleReader}

	// deny by default: no rule grants "promote" to anyone
	assert.ErrorIs(t, authz.Authorize(owner, owner, "promote", "user"), ErrForbidden)
}

func TestAuthorizeUnknownResourceType(t *testing.T) {
	authz := NewAuthorizer()
	admin := model.User{ID: "01H1VEC8S1T0000000000000AA", Role: model.RoleAdmin}

	err := authz.Authorize(admin, admin, "update", "spaceship")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrForbidden)
}
