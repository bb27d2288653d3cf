package interview

// Event is a discrete input to the session state machine.
type Event interface {
	eventName() string
}

// SkillAndLevelSubmitted starts an interview from Idle.
type SkillAndLevelSubmitted struct {
	Skill string
	Level int
}

// QuestionPresented records a generated question and starts waiting for
// the candidate's answer.
type QuestionPresented struct {
	Question string
}

// AnswerSubmitted hands the candidate's answer to the assessor.
type AnswerSubmitted struct {
	Answer string
}

// AnswerAssessed closes the round with the assessor's verdict.
type AnswerAssessed struct {
	Correct bool
}

// AssessmentFailed returns to waiting for an answer to the same question.
type AssessmentFailed struct{}

// ResetRequested returns the session to its pre-interview defaults.
type ResetRequested struct{}

func (SkillAndLevelSubmitted) eventName() string { return "skill-and-level-submitted" }
func (QuestionPresented) eventName() string      { return "question-presented" }
func (AnswerSubmitted) eventName() string        { return "answer-submitted" }
func (AnswerAssessed) eventName() string         { return "answer-assessed" }
func (AssessmentFailed) eventName() string       { return "assessment-failed" }
func (ResetRequested) eventName() string         { return "reset-requested" }
