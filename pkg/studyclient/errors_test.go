package studyclient

import (
	"errors"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{
			name: "wrong session stage",
			err:  &APIError{StatusCode: 409, Message: "session must be in PLANNING status", Kind: classifyMessage("session must be in PLANNING status")},
			want: ErrorWrongStage,
		},
		{
			name: "plan not found",
			err:  &APIError{StatusCode: 404, Message: "study plan not found", Kind: classifyMessage("study plan not found")},
			want: ErrorPlanNotFound,
		},
		{
			name: "no draft plan",
			err:  &APIError{StatusCode: 400, Message: "no study plan found, generate a plan first", Kind: classifyMessage("no study plan found, generate a plan first")},
			want: ErrorPlanNotFound,
		},
		{
			name: "malformed AI output",
			err:  &APIError{StatusCode: 502, Message: "AI response did not contain a valid study plan", Kind: classifyMessage("AI response did not contain a valid study plan")},
			want: ErrorMalformedPlan,
		},
		{
			name: "generation failure",
			err:  &APIError{StatusCode: 502, Message: "plan generation failed", Kind: classifyMessage("plan generation failed")},
			want: ErrorMalformedPlan,
		},
		{
			name: "unmatched business error",
			err:  &APIError{StatusCode: 404, Message: "chat not found", Kind: classifyMessage("chat not found")},
			want: ErrorOther,
		},
		{
			name: "transport failure",
			err:  errors.New("request failed: dial tcp: connection refused"),
			want: ErrorNetwork,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUserMessageVerbatimForUnknown(t *testing.T) {
	err := &APIError{StatusCode: 404, Message: "chat not found", Kind: ErrorOther}
	if got := UserMessage(err); got != "chat not found" {
		t.Errorf("UserMessage() = %q, want the server message verbatim", got)
	}
}

func TestUserMessagePreflight(t *testing.T) {
	if got := UserMessage(ErrNotPDF); got != ErrNotPDF.Error() {
		t.Errorf("UserMessage(ErrNotPDF) = %q", got)
	}
	if got := UserMessage(ErrFileTooLarge); got != ErrFileTooLarge.Error() {
		t.Errorf("UserMessage(ErrFileTooLarge) = %q", got)
	}
}
