package model

import (
	"encoding/json"

	apperrors "study-hub/backend/common/errors"

	"github.com/burugo/thing"
)

// QuizQuestion is a closed multiple-choice question; CorrectAnswer indexes
// into Options.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
}

// QuizParticipant records one member's single attempt.
type QuizParticipant struct {
	UserID    int64 `json:"user_id"`
	Score     int64 `json:"score"`
	Completed bool  `json:"completed"`
}

// Quiz belongs to a group. ExpiresAt locks the quiz: submissions after it
// are rejected, the record itself is never removed.
type Quiz struct {
	thing.BaseModel
	GroupID          int64  `db:"group_id,index" json:"group_id"`
	CreatedBy        int64  `db:"created_by" json:"created_by"`
	Title            string `db:"title" json:"title"`
	QuestionsJSON    string `db:"questions_json" json:"-"`
	ParticipantsJSON string `db:"participants_json" json:"-"`
	FileID           int64  `db:"file_id" json:"file_id,omitempty"`
	ExpiresAt        int64  `db:"expires_at" json:"expires_at"`
}

func (q *Quiz) TableName() string {
	return "quizzes"
}

var QuizDB *thing.Thing[*Quiz]

func QuizInit() error {
	var err error
	QuizDB, err = thing.Use[*Quiz]()
	return err
}

func (q *Quiz) Questions() []QuizQuestion {
	var questions []QuizQuestion
	if q.QuestionsJSON != "" {
		_ = json.Unmarshal([]byte(q.QuestionsJSON), &questions)
	}
	return questions
}

func (q *Quiz) SetQuestions(questions []QuizQuestion) {
	data, _ := json.Marshal(questions)
	q.QuestionsJSON = string(data)
}

func (q *Quiz) Participants() []QuizParticipant {
	participants := []QuizParticipant{}
	if q.ParticipantsJSON != "" {
		_ = json.Unmarshal([]byte(q.ParticipantsJSON), &participants)
	}
	return participants
}

func (q *Quiz) SetParticipants(participants []QuizParticipant) {
	data, _ := json.Marshal(participants)
	q.ParticipantsJSON = string(data)
}

// CreateQuiz inserts a quiz; membership is the caller's responsibility
// (handlers gate through GetGroupForMember first).
func CreateQuiz(groupID, userID int64, title string, questions []QuizQuestion, fileID, expiresAt int64) (*Quiz, error) {
	quiz := &Quiz{
		GroupID:   groupID,
		CreatedBy: userID,
		Title:     title,
		FileID:    fileID,
		ExpiresAt: expiresAt,
	}
	quiz.SetQuestions(questions)
	quiz.SetParticipants([]QuizParticipant{})
	if err := QuizDB.Save(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

func ListGroupQuizzes(groupID int64) ([]*Quiz, error) {
	return QuizDB.Where("group_id = ?", groupID).Order("id DESC").All()
}

func GetQuizByID(quizID int64) (*Quiz, error) {
	quiz, err := QuizDB.ByID(quizID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeNotFound, "quiz not found", err)
	}
	return quiz, nil
}

// SubmitQuiz scores one attempt per user. An expired quiz is locked, a
// repeat submission is a conflict. The score is also awarded into the
// group's points ledgers.
func SubmitQuiz(quiz *Quiz, group *StudyGroup, userID int64, answers []int) (*QuizParticipant, error) {
	if quiz.ExpiresAt != 0 && NowMillis() > quiz.ExpiresAt {
		return nil, apperrors.InvalidOperation("quiz has expired")
	}
	participants := quiz.Participants()
	for _, p := range participants {
		if p.UserID == userID {
			return nil, apperrors.Conflict("quiz already submitted")
		}
	}

	questions := quiz.Questions()
	var score int64
	for i, question := range questions {
		if i < len(answers) && answers[i] == question.CorrectAnswer {
			score++
		}
	}

	entry := QuizParticipant{UserID: userID, Score: score, Completed: true}
	quiz.SetParticipants(append(participants, entry))
	if err := QuizDB.Save(quiz); err != nil {
		return nil, err
	}

	group.AwardPoints(userID, score)
	if err := group.Update(); err != nil {
		return nil, err
	}
	return &entry, nil
}
