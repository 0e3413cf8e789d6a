package progression

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGradeMultipleChoice(t *testing.T) {
	q := Question{Type: QuestionMultipleChoice, Question: "Pick one", CorrectAnswer: json.RawMessage(`2`)}

	ok, err := q.Grade(json.RawMessage(`2`))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = q.Grade(json.RawMessage(`1`))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGradeDefaultsToMultipleChoice(t *testing.T) {
	// Imported question banks omit the type field entirely
	q := Question{Question: "Pick one", CorrectAnswer: json.RawMessage(`0`)}

	ok, err := q.Grade(json.RawMessage(`0`))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestGradeMultipleChoiceStringKey(t *testing.T) {
	q := Question{Question: "Needs vs wants", CorrectAnswer: json.RawMessage(`"Needs"`)}

	ok, err := q.Grade(json.RawMessage(`"Needs"`))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = q.Grade(json.RawMessage(`"Wants"`))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGradeTrueFalse(t *testing.T) {
	q := Question{Type: QuestionTrueFalse, Question: "Compound interest grows", CorrectAnswer: json.RawMessage(`true`)}

	ok, err := q.Grade(json.RawMessage(`true`))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = q.Grade(json.RawMessage(`false`))
	require.NoError(t, err)
	assert.False(t, ok)

	// Non-boolean submission never matches
	ok, err = q.Grade(json.RawMessage(`"true"`))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGradeNumericTolerance(t *testing.T) {
	q := Question{Type: QuestionNumeric, Question: "Monthly budget", CorrectAnswer: json.RawMessage(`150`), Tolerance: 0.5}

	cases := []struct {
		answer string
		want   bool
	}{
		{`150`, true},
		{`150.5`, true},
		{`149.5`, true},
		{`151`, false},
		{`"150"`, false},
	}
	for _, tc := range cases {
		ok, err := q.Grade(json.RawMessage(tc.answer))
		require.NoError(t, err)
		assert.Equal(t, tc.want, ok, "answer %s", tc.answer)
	}
}

func TestGradeUnknownType(t *testing.T) {
	q := Question{Type: "essay", Question: "Explain", CorrectAnswer: json.RawMessage(`"n/a"`)}

	_, err := q.Grade(json.RawMessage(`"anything"`))
	assert.ErrorIs(t, err, ErrPreconditionFailed)
}

func TestGradeSubmissionTranscript(t *testing.T) {
	questions := []Question{
		{ID: "q1", Question: "A", CorrectAnswer: json.RawMessage(`0`)},
		{ID: "q2", Question: "B", CorrectAnswer: json.RawMessage(`1`)},
		{ID: "q3", Type: QuestionTrueFalse, Question: "C", CorrectAnswer: json.RawMessage(`false`)},
	}
	answers := []json.RawMessage{
		json.RawMessage(`0`),
		json.RawMessage(`3`),
		json.RawMessage(`false`),
	}

	correct, transcript, err := GradeSubmission(questions, answers)
	require.NoError(t, err)

	assert.Equal(t, 2, correct)
	require.Len(t, transcript, 3)
	assert.True(t, transcript[0].IsCorrect)
	assert.False(t, transcript[1].IsCorrect)
	assert.True(t, transcript[2].IsCorrect)
	assert.Equal(t, "q2", transcript[1].QuestionID)
	assert.Equal(t, json.RawMessage(`3`), transcript[1].StudentAnswer)
}

func TestGradeSubmissionLengthMismatch(t *testing.T) {
	questions := []Question{{Question: "A", CorrectAnswer: json.RawMessage(`0`)}}

	_, _, err := GradeSubmission(questions, nil)
	assert.ErrorIs(t, err, ErrPreconditionFailed)

	_, _, err = GradeSubmission(questions, []json.RawMessage{json.RawMessage(`0`), json.RawMessage(`1`)})
	assert.ErrorIs(t, err, ErrPreconditionFailed)
}

func TestParseQuestionsRejectsEmpty(t *testing.T) {
	_, err := ParseQuestions(nil)
	assert.ErrorIs(t, err, ErrPreconditionFailed)

	_, err = ParseQuestions([]byte(`{"not":"an array"}`))
	assert.ErrorIs(t, err, ErrPreconditionFailed)

	// An empty array decodes fine but is just as unusable as no bytes
	_, err = ParseQuestions([]byte(`[]`))
	assert.ErrorIs(t, err, ErrPreconditionFailed)

	_, err = ParseQuestions([]byte(`null`))
	assert.ErrorIs(t, err, ErrPreconditionFailed)
}
