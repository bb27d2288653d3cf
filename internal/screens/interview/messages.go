package interview

import (
	"time"

	iv "github.com/abhisek/interviewbot/internal/interview"
)

// questionReadyMsg is sent when the controller returns from NextQuestion.
type questionReadyMsg struct {
	Snapshot iv.Snapshot
	Err      error
}

// answerAssessedMsg is sent when the controller returns from SubmitAnswer.
type answerAssessedMsg struct {
	Result iv.RoundResult
	Err    error
}

// spinnerTickMsg animates the busy indicator.
type spinnerTickMsg time.Time
