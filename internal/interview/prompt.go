package interview

import (
	"fmt"

	"github.com/abhisek/interviewbot/internal/llm"
)

// Purpose labels attached to every collaborator call.
const (
	PurposeQuestionGen = "question-gen"
	PurposeAssessment  = "assessment"
)

// SystemPrompt describes the interviewer's behaviour to the model.
const SystemPrompt = `You are an interviewer who writes one multiple choice question at a time to interview a candidate, given the candidate's skill and skill level.
When the candidate answered the previous question correctly, the next question is harder.
When the candidate answered it incorrectly, the next question is of similar or lower difficulty.
The interview has a fixed number of questions in total.`

// QuestionDirective is the human turn that asks for the next question.
func QuestionDirective(in GenerateInput) string {
	return fmt.Sprintf("Generate an interview question on %s - %s : %d/10 level",
		in.Skill, in.Description, in.Level)
}

// AssessmentDirective is the human turn that asks whether answer is correct.
func AssessmentDirective(question, answer string) string {
	return fmt.Sprintf("Question: %s\nAnswer: %s\nWas the answer correct? Respond with 'yes' or 'no'.",
		question, answer)
}

// verdictDirective asks for a structured verdict instead of a yes/no reply.
func verdictDirective(question, answer string) string {
	return fmt.Sprintf("Question: %s\nAnswer: %s\nWas the answer correct? Respond with a JSON object with a boolean \"correct\" and a one-sentence \"reason\".",
		question, answer)
}

// verdictSchema constrains replies in AssessVerdict mode.
var verdictSchema = &llm.Schema{
	Name:        "answer-verdict",
	Description: "Whether the candidate's answer is correct",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"correct": map[string]any{
				"type":        "boolean",
				"description": "true when the answer is correct",
			},
			"reason": map[string]any{
				"type":        "string",
				"description": "one sentence explaining the verdict",
			},
		},
		"required":             []any{"correct", "reason"},
		"additionalProperties": false,
	},
}
