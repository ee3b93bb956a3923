package testdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsIntegrationTestEnvironment(t *testing.T) {
	t.Setenv(DatabaseURLEnv, "")
	assert.False(t, IsIntegrationTestEnvironment())

	t.Setenv(DatabaseURLEnv, "postgres://localhost/tasks")
	assert.True(t, IsIntegrationTestEnvironment())
}
