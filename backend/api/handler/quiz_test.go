package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"study-hub/backend/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func createQuizGroup(t *testing.T, creatorID int64) *model.StudyGroup {
	t.Helper()
	group, err := model.CreateGroup(creatorID, "exam prep", "")
	assert.NoError(t, err)
	return group
}

// The wire shape never carries correct answers before submission.
func TestCreateQuizHidesCorrectAnswers(t *testing.T) {
	setupHandlerTest(t)
	alice := createTestUser(t, "alice")
	group := createQuizGroup(t, alice.ID)

	req := newJSONRequest(t, http.MethodPost, "/api/groups/1/quizzes", map[string]any{
		"title": "arithmetic",
		"questions": []map[string]any{
			{"question": "2 + 2", "options": []string{"3", "4"}, "correct_answer": 1},
		},
	})
	c, recorder := newTestContext(t, alice.ID, req)
	groupParam(c, group.ID)
	CreateQuiz(c)
	assert.Equal(t, http.StatusOK, recorder.Code)

	assert.NotContains(t, recorder.Body.String(), "correct_answer")

	var view struct {
		Questions []struct {
			Question string   `json:"question"`
			Options  []string `json:"options"`
		} `json:"questions"`
	}
	assert.NoError(t, json.Unmarshal(decodeAPIResponse(t, recorder).Data, &view))
	assert.Len(t, view.Questions, 1)
	assert.Equal(t, []string{"3", "4"}, view.Questions[0].Options)
}

func TestCreateQuizRejectsBadAnswerIndex(t *testing.T) {
	setupHandlerTest(t)
	alice := createTestUser(t, "alice")
	group := createQuizGroup(t, alice.ID)

	req := newJSONRequest(t, http.MethodPost, "/api/groups/1/quizzes", map[string]any{
		"title": "broken",
		"questions": []map[string]any{
			{"question": "2 + 2", "options": []string{"3", "4"}, "correct_answer": 5},
		},
	})
	c, recorder := newTestContext(t, alice.ID, req)
	groupParam(c, group.ID)
	CreateQuiz(c)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestSubmitQuizHandlerScoresAttempt(t *testing.T) {
	setupHandlerTest(t)
	alice := createTestUser(t, "alice")
	group := createQuizGroup(t, alice.ID)

	quiz, err := model.CreateQuiz(group.ID, alice.ID, "arithmetic", []model.QuizQuestion{
		{Question: "2 + 2", Options: []string{"3", "4"}, CorrectAnswer: 1},
		{Question: "3 * 3", Options: []string{"6", "9"}, CorrectAnswer: 1},
	}, 0, 0)
	assert.NoError(t, err)

	req := newJSONRequest(t, http.MethodPost, "/api/quizzes/1/submit", map[string]any{
		"answers": []int{1, 0},
	})
	c, recorder := newTestContext(t, alice.ID, req)
	c.Params = gin.Params{{Key: "id", Value: strconv.FormatInt(quiz.ID, 10)}}
	SubmitQuiz(c)
	assert.Equal(t, http.StatusOK, recorder.Code)

	var result model.QuizParticipant
	assert.NoError(t, json.Unmarshal(decodeAPIResponse(t, recorder).Data, &result))
	assert.Equal(t, int64(1), result.Score)
}

func TestSubmitQuizHandlerDeniedForNonMember(t *testing.T) {
	setupHandlerTest(t)
	alice := createTestUser(t, "alice")
	bob := createTestUser(t, "bob")
	group := createQuizGroup(t, alice.ID)

	quiz, err := model.CreateQuiz(group.ID, alice.ID, "arithmetic", []model.QuizQuestion{
		{Question: "2 + 2", Options: []string{"3", "4"}, CorrectAnswer: 1},
	}, 0, 0)
	assert.NoError(t, err)

	req := newJSONRequest(t, http.MethodPost, "/api/quizzes/1/submit", map[string]any{
		"answers": []int{1},
	})
	c, recorder := newTestContext(t, bob.ID, req)
	c.Params = gin.Params{{Key: "id", Value: strconv.FormatInt(quiz.ID, 10)}}
	SubmitQuiz(c)
	assert.Equal(t, http.StatusForbidden, recorder.Code)
}
