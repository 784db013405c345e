package models

import (
	"encoding/json"
	"time"
)

// User represents a registered user
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Question represents an imported multiple-choice legal question
type Question struct {
	ID       string   `json:"id"`
	SourceID string   `json:"source_id"`
	Split    string   `json:"split"`
	Prompt   string   `json:"prompt,omitempty"`
	Question string   `json:"question"`
	Choices  []string `json:"choices"`
	Answer   string   `json:"answer"`
}

// DebateRun represents one completed debate over a question. Transcript,
// Decision and Arguments carry the recorded exchange and are omitted from
// list responses.
type DebateRun struct {
	ID          string          `json:"id"`
	QuestionID  string          `json:"question_id"`
	Variant     string          `json:"variant"`
	PositionX   string          `json:"position_x"`
	PositionY   string          `json:"position_y"`
	Winner      string          `json:"winner"`
	FinalAnswer string          `json:"final_answer"`
	Correct     bool            `json:"correct"`
	Model       string          `json:"model"`
	Transcript  json.RawMessage `json:"transcript,omitempty"`
	Decision    json.RawMessage `json:"decision,omitempty"`
	Arguments   []Argument      `json:"arguments,omitempty"`
}

// Argument represents one stored debater turn from a run
type Argument struct {
	ID       string `json:"id"`
	RunID    string `json:"run_id"`
	Side     string `json:"side"`
	Phase    string `json:"phase"`
	Position string `json:"position"`
	Text     string `json:"text"`
}

// SimilarArgument represents a stored argument matched by similarity search
type SimilarArgument struct {
	Argument
	Similarity float64 `json:"similarity"`
}
