package controllers

import (
	"fmt"
	"math"
	"testing"

	courseModels "tka-lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func questionSet(correctIndexes ...int) []courseModels.Question {
	questions := make([]courseModels.Question, len(correctIndexes))
	for i, correct := range correctIndexes {
		questions[i] = courseModels.Question{
			Question:     fmt.Sprintf("Question %d", i+1),
			Options:      []string{"A", "B", "C", "D"},
			CorrectIndex: correct,
		}
	}
	return questions
}

func answersFor(quizID uint, selections map[int]int) []SubmittedAnswer {
	answers := make([]SubmittedAnswer, 0, len(selections))
	for index := 0; index < 32; index++ {
		selected, ok := selections[index]
		if !ok {
			continue
		}
		answers = append(answers, SubmittedAnswer{
			QuizID:         courseModels.QuestionID(quizID, index),
			SelectedAnswer: selected,
		})
	}
	return answers
}

func TestScoreSubmissionAllCorrect(t *testing.T) {
	questions := questionSet(1, 1, 1, 1)
	answers := answersFor(7, map[int]int{0: 1, 1: 1, 2: 1, 3: 1})

	result := ScoreSubmission(7, questions, answers)

	assert.Equal(t, 100, result.Score)
	assert.Equal(t, 4, result.TotalQuestions)
	assert.Equal(t, 4, result.CorrectAnswers)
	assert.True(t, result.Passed)
	require.Len(t, result.Results, 4)
	for _, r := range result.Results {
		assert.True(t, r.IsCorrect)
		assert.Equal(t, 1, r.CorrectAnswer)
	}
}

func TestScoreSubmissionHalfCorrect(t *testing.T) {
	questions := questionSet(1, 1, 1, 1)
	answers := answersFor(7, map[int]int{0: 1, 1: 1, 2: 0, 3: 0})

	result := ScoreSubmission(7, questions, answers)

	assert.Equal(t, 50, result.Score)
	assert.Equal(t, 2, result.CorrectAnswers)
	assert.False(t, result.Passed)
}

func TestScoreSubmissionSkippedQuestionsCountAgainstFullSet(t *testing.T) {
	// 10-question set, 5 answered all correct: 50, not 100
	questions := questionSet(0, 0, 0, 0, 0, 0, 0, 0, 0, 0)
	answers := answersFor(3, map[int]int{0: 0, 1: 0, 2: 0, 3: 0, 4: 0})

	result := ScoreSubmission(3, questions, answers)

	assert.Equal(t, 50, result.Score)
	assert.Equal(t, 10, result.TotalQuestions)
	assert.Equal(t, 5, result.CorrectAnswers)
	assert.False(t, result.Passed)
	assert.Len(t, result.Results, 5)
}

func TestScoreSubmissionUnknownQuizIDsIgnored(t *testing.T) {
	questions := questionSet(2, 2)
	answers := []SubmittedAnswer{
		{QuizID: courseModels.QuestionID(9, 0), SelectedAnswer: 2},
		{QuizID: "999-q42", SelectedAnswer: 2},
		{QuizID: "not-an-id", SelectedAnswer: 2},
		{QuizID: courseModels.QuestionID(9, 1), SelectedAnswer: 2},
	}

	result := ScoreSubmission(9, questions, answers)

	assert.Equal(t, 100, result.Score)
	assert.Equal(t, 2, result.CorrectAnswers)
	assert.Len(t, result.Results, 2, "unresolvable entries must not appear in results")
}

func TestScoreSubmissionPassBoundary(t *testing.T) {
	// 7/10 correct = exactly 70: passed
	questions := questionSet(0, 0, 0, 0, 0, 0, 0, 0, 0, 0)
	answers := answersFor(1, map[int]int{0: 0, 1: 0, 2: 0, 3: 0, 4: 0, 5: 0, 6: 0, 7: 1, 8: 1, 9: 1})
	result := ScoreSubmission(1, questions, answers)
	assert.Equal(t, 70, result.Score)
	assert.True(t, result.Passed)

	// 9/13 correct = 69.23 -> 69: not passed
	questions = questionSet(0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0)
	selections := make(map[int]int)
	for i := 0; i < 9; i++ {
		selections[i] = 0
	}
	for i := 9; i < 13; i++ {
		selections[i] = 1
	}
	result = ScoreSubmission(1, questions, answersFor(1, selections))
	assert.Equal(t, 69, result.Score)
	assert.False(t, result.Passed)
}

func TestScoreSubmissionSingleQuestion(t *testing.T) {
	questions := questionSet(3)
	result := ScoreSubmission(5, questions, answersFor(5, map[int]int{0: 3}))
	assert.Equal(t, 100, result.Score)
	assert.True(t, result.Passed)

	result = ScoreSubmission(5, questions, answersFor(5, map[int]int{0: 2}))
	assert.Equal(t, 0, result.Score)
	assert.False(t, result.Passed)
}

func TestScoreSubmissionRoundsHalfUp(t *testing.T) {
	// 1/8 correct = 12.5 -> 13
	questions := questionSet(0, 0, 0, 0, 0, 0, 0, 0)
	result := ScoreSubmission(2, questions, answersFor(2, map[int]int{0: 0}))
	assert.Equal(t, 13, result.Score)
}

func TestScoreSubmissionBoundsAndRounding(t *testing.T) {
	for n := 1; n <= 12; n++ {
		correctIndexes := make([]int, n)
		questions := questionSet(correctIndexes...)

		for correct := 0; correct <= n; correct++ {
			selections := make(map[int]int)
			for i := 0; i < correct; i++ {
				selections[i] = 0
			}
			for i := correct; i < n; i++ {
				selections[i] = 1
			}

			result := ScoreSubmission(1, questions, answersFor(1, selections))

			expected := int(math.Round(float64(correct) / float64(n) * 100))
			assert.Equal(t, expected, result.Score, "n=%d correct=%d", n, correct)
			assert.GreaterOrEqual(t, result.Score, 0)
			assert.LessOrEqual(t, result.Score, 100)
			assert.Equal(t, result.Passed, result.Score >= PassThresholdPercent)
		}
	}
}
