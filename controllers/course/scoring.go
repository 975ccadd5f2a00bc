package controllers

import (
	"math"

	courseModels "tka-lms/models/course"
)

// PassThresholdPercent is the fixed score cutoff for marking a lesson
// completed. It is intentionally not configurable per lesson.
const PassThresholdPercent = 70

// SubmittedAnswer is one answer entry from the client. QuizID is the
// synthesized question id echoed back from the lesson payload.
type SubmittedAnswer struct {
	QuizID         string `json:"quiz_id"`
	SelectedAnswer int    `json:"selected_answer"`
}

// AnswerResult is the per-question outcome returned to the client.
type AnswerResult struct {
	QuizID         string `json:"quiz_id"`
	Question       string `json:"question"`
	SelectedAnswer int    `json:"selected_answer"`
	CorrectAnswer  int    `json:"correct_answer"`
	IsCorrect      bool   `json:"is_correct"`
}

// SubmissionResult is the scored outcome of a quiz submission.
type SubmissionResult struct {
	Score          int            `json:"score"`
	TotalQuestions int            `json:"totalQuestions"`
	CorrectAnswers int            `json:"correctAnswers"`
	Passed         bool           `json:"passed"`
	Results        []AnswerResult `json:"results"`
}

// ScoreSubmission scores submitted answers against a quiz's question set.
// Answers whose quiz_id does not resolve to a known question are skipped
// rather than rejected, so stale clients can still submit. The denominator
// is always the full question-set length, not the number of answers.
func ScoreSubmission(quizID uint, questions []courseModels.Question, answers []SubmittedAnswer) SubmissionResult {
	lookup := make(map[string]courseModels.Question, len(questions))
	for i, q := range questions {
		lookup[courseModels.QuestionID(quizID, i)] = q
	}

	correctCount := 0
	results := make([]AnswerResult, 0, len(answers))

	for _, answer := range answers {
		question, ok := lookup[answer.QuizID]
		if !ok {
			continue
		}

		isCorrect := answer.SelectedAnswer == question.CorrectIndex
		if isCorrect {
			correctCount++
		}
		results = append(results, AnswerResult{
			QuizID:         answer.QuizID,
			Question:       question.Question,
			SelectedAnswer: answer.SelectedAnswer,
			CorrectAnswer:  question.CorrectIndex,
			IsCorrect:      isCorrect,
		})
	}

	totalQuestions := len(questions)
	score := int(math.Round(float64(correctCount) / float64(totalQuestions) * 100))

	return SubmissionResult{
		Score:          score,
		TotalQuestions: totalQuestions,
		CorrectAnswers: correctCount,
		Passed:         score >= PassThresholdPercent,
		Results:        results,
	}
}
