package course

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Quiz holds the question set for a lesson. One quiz row per lesson by
// convention; the questions live in a single JSON column.
type Quiz struct {
	gorm.Model
	LessonID  uint           `json:"lesson_id" gorm:"index;not null"`
	Questions datatypes.JSON `json:"questions"`
	IsDeleted bool           `gorm:"default:false"`
}

// Question is one multiple-choice entry inside a quiz's question set.
type Question struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
}

// QuestionID derives the stable identifier for a question from the quiz row
// id and the question's position. Questions have no stored id of their own,
// so this synthesized id is the join key clients echo back on submission.
func QuestionID(quizID uint, index int) string {
	return fmt.Sprintf("%d-q%d", quizID, index)
}

// ParseQuestions decodes the Questions column into typed questions. Older
// seed data stored the array double-encoded as a JSON string, so both forms
// are accepted here and nowhere else.
func ParseQuestions(raw datatypes.JSON) ([]Question, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var questions []Question
	if err := json.Unmarshal(raw, &questions); err == nil {
		return questions, nil
	}

	var encoded string
	if err := json.Unmarshal(raw, &encoded); err != nil {
		return nil, fmt.Errorf("questions column is neither an array nor a string: %w", err)
	}
	if err := json.Unmarshal([]byte(encoded), &questions); err != nil {
		return nil, fmt.Errorf("decoding string-encoded questions: %w", err)
	}
	return questions, nil
}
