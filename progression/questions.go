package progression

import (
	"encoding/json"
	"fmt"
	"math"
)

// Question kinds. Each kind carries its own comparison rule.
const (
	QuestionMultipleChoice = "multiple_choice" // answer is an option index, exact match
	QuestionTrueFalse      = "true_false"      // answer is a boolean
	QuestionNumeric        = "numeric"         // answer is a number within tolerance
)

// Question is one entry of a quiz's stored question bank. Type selects the
// comparison rule; an empty Type means multiple_choice, which is what the
// curriculum importers emit.
type Question struct {
	ID            string          `json:"id,omitempty"`
	Type          string          `json:"type,omitempty"`
	Question      string          `json:"question"`
	Options       []string        `json:"options,omitempty"`
	CorrectAnswer json.RawMessage `json:"correctAnswer"`
	Tolerance     float64         `json:"tolerance,omitempty"` // numeric kind only
	Explanation   string          `json:"explanation,omitempty"`
}

// GradedAnswer is one line of the per-attempt transcript persisted with the
// attempt row and echoed back to the client.
type GradedAnswer struct {
	QuestionID    string          `json:"questionId"`
	Question      string          `json:"question"`
	StudentAnswer json.RawMessage `json:"studentAnswer"`
	CorrectAnswer json.RawMessage `json:"correctAnswer"`
	IsCorrect     bool            `json:"isCorrect"`
	Explanation   string          `json:"explanation,omitempty"`
}

// ParseQuestions decodes a quiz's stored question bank
func ParseQuestions(raw []byte) ([]Question, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: quiz has no questions", ErrPreconditionFailed)
	}
	var questions []Question
	if err := json.Unmarshal(raw, &questions); err != nil {
		return nil, fmt.Errorf("%w: malformed question bank: %v", ErrPreconditionFailed, err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: quiz has no questions", ErrPreconditionFailed)
	}
	return questions, nil
}

// Grade compares a submitted answer to the stored key using the comparison
// rule of the question's kind
func (q Question) Grade(answer json.RawMessage) (bool, error) {
	kind := q.Type
	if kind == "" {
		kind = QuestionMultipleChoice
	}

	switch kind {
	case QuestionMultipleChoice:
		return matchChoice(q.CorrectAnswer, answer), nil
	case QuestionTrueFalse:
		return matchBool(q.CorrectAnswer, answer), nil
	case QuestionNumeric:
		return matchNumeric(q.CorrectAnswer, answer, q.Tolerance), nil
	default:
		return false, fmt.Errorf("%w: unknown question type %q", ErrPreconditionFailed, q.Type)
	}
}

// matchChoice compares option indices; a string submission is matched against
// a string key so legacy text answers still grade correctly
func matchChoice(key, answer json.RawMessage) bool {
	var keyIdx, ansIdx int
	if json.Unmarshal(key, &keyIdx) == nil && json.Unmarshal(answer, &ansIdx) == nil {
		return keyIdx == ansIdx
	}
	var keyStr, ansStr string
	if json.Unmarshal(key, &keyStr) == nil && json.Unmarshal(answer, &ansStr) == nil {
		return keyStr == ansStr
	}
	return false
}

func matchBool(key, answer json.RawMessage) bool {
	var keyVal, ansVal bool
	if json.Unmarshal(key, &keyVal) != nil || json.Unmarshal(answer, &ansVal) != nil {
		return false
	}
	return keyVal == ansVal
}

func matchNumeric(key, answer json.RawMessage, tolerance float64) bool {
	var keyVal, ansVal float64
	if json.Unmarshal(key, &keyVal) != nil || json.Unmarshal(answer, &ansVal) != nil {
		return false
	}
	return math.Abs(keyVal-ansVal) <= tolerance
}

// GradeSubmission scores an ordered answer list against the question bank.
// The answer count must match the question count exactly.
func GradeSubmission(questions []Question, answers []json.RawMessage) (correct int, transcript []GradedAnswer, err error) {
	if len(answers) != len(questions) {
		return 0, nil, fmt.Errorf("%w: expected %d answers, got %d", ErrPreconditionFailed, len(questions), len(answers))
	}

	transcript = make([]GradedAnswer, len(questions))
	for i, q := range questions {
		ok, gradeErr := q.Grade(answers[i])
		if gradeErr != nil {
			return 0, nil, gradeErr
		}
		if ok {
			correct++
		}

		questionID := q.ID
		if questionID == "" {
			questionID = fmt.Sprintf("%d", i)
		}
		transcript[i] = GradedAnswer{
			QuestionID:    questionID,
			Question:      q.Question,
			StudentAnswer: answers[i],
			CorrectAnswer: q.CorrectAnswer,
			IsCorrect:     ok,
			Explanation:   q.Explanation,
		}
	}
	return correct, transcript, nil
}
