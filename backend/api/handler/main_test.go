package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"study-hub/backend/common"
	"study-hub/backend/model"
	"study-hub/backend/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type apiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupHandlerTest(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	originalSQLitePath := common.SQLitePath
	common.SQLitePath = filepath.Join(t.TempDir(), "handler_test.db")

	err := model.InitDB()
	assert.NoError(t, err)

	t.Cleanup(func() {
		common.SQLitePath = originalSQLitePath
	})
}

func createTestUser(t *testing.T, username string) *model.User {
	t.Helper()
	user := &model.User{
		Username:    username,
		Password:    "secret123",
		DisplayName: username,
	}
	err := user.Insert()
	assert.NoError(t, err)
	return user
}

// runJobsInline makes deferred jobs execute synchronously inside the
// handler call, so tests observe their effects immediately.
func runJobsInline(t *testing.T) {
	t.Helper()
	original := service.RunAfter
	service.RunAfter = func(_ time.Duration, job func()) { job() }
	t.Cleanup(func() { service.RunAfter = original })
}

func newJSONRequest(t *testing.T, method string, path string, payload any) *http.Request {
	t.Helper()
	body, err := json.Marshal(payload)
	assert.NoError(t, err)
	req, err := http.NewRequest(method, path, bytes.NewBuffer(body))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func newTestContext(t *testing.T, userID int64, req *http.Request) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = req
	if userID != 0 {
		c.Set("user_id", userID)
	}
	return c, recorder
}

func decodeAPIResponse(t *testing.T, recorder *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var resp apiResponse
	err := json.Unmarshal(recorder.Body.Bytes(), &resp)
	assert.NoError(t, err)
	return resp
}
