package mocks

import (
	"github.com/stretchr/testify/mock"
)

// PermissionOracle is a mock type for domain.PermissionOracle
type PermissionOracle struct {
	mock.Mock
}

func (m *PermissionOracle) CanDeleteAnyComment(username string) bool {
	args := m.Called(username)
	return args.Bool(0)
}
