package handler

import (
	"net/http"
	"strconv"

	"study-hub/backend/common"
	"study-hub/backend/model"

	"github.com/gin-gonic/gin"
)

// quizView exposes questions and participants from their JSON columns.
// Correct answers stay server-side until the caller has submitted.
type quizQuestionView struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type quizView struct {
	*model.Quiz
	Questions    []quizQuestionView      `json:"questions"`
	Participants []model.QuizParticipant `json:"participants"`
}

func viewQuiz(q *model.Quiz) quizView {
	questions := q.Questions()
	views := make([]quizQuestionView, 0, len(questions))
	for _, question := range questions {
		views = append(views, quizQuestionView{Question: question.Question, Options: question.Options})
	}
	return quizView{Quiz: q, Questions: views, Participants: q.Participants()}
}

type createQuizPayload struct {
	Title     string               `json:"title" validate:"required,max=200"`
	Questions []model.QuizQuestion `json:"questions" validate:"required,min=1,dive"`
	FileID    int64                `json:"file_id"`
	ExpiresAt int64                `json:"expires_at"`
}

func CreateQuiz(c *gin.Context) {
	var payload createQuizPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request", err)
		return
	}
	if err := common.Validate.Struct(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request", err)
		return
	}
	for _, question := range payload.Questions {
		if len(question.Options) < 2 || question.CorrectAnswer < 0 || question.CorrectAnswer >= len(question.Options) {
			common.RespErrorStr(c, http.StatusBadRequest, "each question needs at least two options and a valid correct_answer index")
			return
		}
	}

	group, ok := memberGroup(c)
	if !ok {
		return
	}
	quiz, err := model.CreateQuiz(group.ID, c.GetInt64("user_id"),
		payload.Title, payload.Questions, payload.FileID, payload.ExpiresAt)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to create quiz", err)
		return
	}
	common.RespSuccess(c, viewQuiz(quiz))
}

func ListQuizzes(c *gin.Context) {
	group, ok := memberGroup(c)
	if !ok {
		return
	}
	quizzes, err := model.ListGroupQuizzes(group.ID)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to list quizzes", err)
		return
	}
	views := make([]quizView, 0, len(quizzes))
	for _, quiz := range quizzes {
		views = append(views, viewQuiz(quiz))
	}
	common.RespSuccess(c, views)
}

type submitQuizPayload struct {
	Answers []int `json:"answers" validate:"required"`
}

// SubmitQuiz scores a single attempt and pays the score into the group's
// points ledgers. Expired quizzes are locked.
func SubmitQuiz(c *gin.Context) {
	quizID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.RespErrorStr(c, http.StatusBadRequest, "invalid quiz id")
		return
	}
	var payload submitQuizPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	quiz, err := model.GetQuizByID(quizID)
	if err != nil {
		common.RespAppError(c, err)
		return
	}
	userID := c.GetInt64("user_id")
	group, err := model.GetGroupForMember(quiz.GroupID, userID)
	if err != nil {
		common.RespAppError(c, err)
		return
	}

	result, err := model.SubmitQuiz(quiz, group, userID, payload.Answers)
	if err != nil {
		common.RespAppError(c, err)
		return
	}
	common.RespSuccess(c, result)
}
