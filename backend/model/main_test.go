package model

import (
	"path/filepath"
	"testing"

	"study-hub/backend/common"

	"github.com/stretchr/testify/assert"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	originalSQLitePath := common.SQLitePath
	common.SQLitePath = filepath.Join(t.TempDir(), "model_test.db")

	err := InitDB()
	assert.NoError(t, err)

	t.Cleanup(func() {
		common.SQLitePath = originalSQLitePath
	})
}

func createTestUser(t *testing.T, username string) *User {
	t.Helper()
	user := &User{
		Username:    username,
		Password:    "secret123",
		DisplayName: username,
	}
	err := user.Insert()
	assert.NoError(t, err)
	return user
}
