package debate

import "encoding/json"

// Position is the answer-choice label a debater defends
type Position string

const (
	PositionA Position = "A"
	PositionB Position = "B"
	PositionC Position = "C"
	PositionD Position = "D"
)

// Positions lists all valid answer-choice labels in order
var Positions = []Position{PositionA, PositionB, PositionC, PositionD}

// IsValid reports whether p is one of the four answer-choice labels
func (p Position) IsValid() bool {
	switch p {
	case PositionA, PositionB, PositionC, PositionD:
		return true
	}
	return false
}

// NumChoices is the fixed number of answer choices per question
const NumChoices = 4

// Winner identifies which side the judge declares the stronger
type Winner string

const (
	WinnerX   Winner = "debater_x"
	WinnerY   Winner = "debater_y"
	WinnerTie Winner = "tie"
)

// IRAC holds the four components of an Issue-Rule-Application-Conclusion
// argument. Components may be empty text but are always present in a
// validated value.
type IRAC struct {
	Issue       string `json:"issue"`
	Rule        string `json:"rule"`
	Application string `json:"application"`
	Conclusion  string `json:"conclusion"`
}

// Critique holds the four components of an IRAC-structured rebuttal
type Critique struct {
	IssueCritique       string `json:"issue_critique"`
	RuleCritique        string `json:"rule_critique"`
	ApplicationCritique string `json:"application_critique"`
	MyReinforcement     string `json:"my_reinforcement"`
}

// OpeningArgument is a debater's validated opening. Exactly one of Argument
// (vanilla) or IRAC (irac/hybrid) is populated.
type OpeningArgument struct {
	Position  Position `json:"position"`
	Argument  string   `json:"argument,omitempty"`
	IRAC      *IRAC    `json:"irac,omitempty"`
	Citations []string `json:"citations"`
}

// Rebuttal is a debater's validated rebuttal. Vanilla rebuttals populate Text
// and Counterarguments; IRAC rebuttals populate Critique.
type Rebuttal struct {
	Text             string
	Counterarguments []string
	Critique         *Critique
	Citations        []string
}

// vanillaRebuttalWire and iracRebuttalWire are the two incompatible JSON
// shapes the model returns for rebuttals; Rebuttal marshals back to whichever
// shape it was decoded from.
type vanillaRebuttalWire struct {
	Rebuttal         string   `json:"rebuttal"`
	Counterarguments []string `json:"counterarguments,omitempty"`
	Citations        []string `json:"citations"`
}

type iracRebuttalWire struct {
	Rebuttal  Critique `json:"rebuttal"`
	Citations []string `json:"citations"`
}

// MarshalJSON emits the variant-appropriate wire shape
func (r Rebuttal) MarshalJSON() ([]byte, error) {
	if r.Critique != nil {
		return json.Marshal(iracRebuttalWire{Rebuttal: *r.Critique, Citations: r.Citations})
	}
	return json.Marshal(vanillaRebuttalWire{
		Rebuttal:         r.Text,
		Counterarguments: r.Counterarguments,
		Citations:        r.Citations,
	})
}

// UnmarshalJSON accepts either wire shape, keyed on the type of the
// "rebuttal" field
func (r *Rebuttal) UnmarshalJSON(data []byte) error {
	var head struct {
		Rebuttal json.RawMessage `json:"rebuttal"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}
	if len(head.Rebuttal) > 0 && head.Rebuttal[0] == '{' {
		var w iracRebuttalWire
		if err := json.Unmarshal(data, &w); err != nil {
			return err
		}
		*r = Rebuttal{Critique: &w.Rebuttal, Citations: w.Citations}
		return nil
	}
	var w vanillaRebuttalWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*r = Rebuttal{Text: w.Rebuttal, Counterarguments: w.Counterarguments, Citations: w.Citations}
	return nil
}

// Entry is one side's recorded contribution to a transcript
type Entry struct {
	Opening  *OpeningArgument `json:"opening"`
	Rebuttal *Rebuttal        `json:"rebuttal,omitempty"`
}

// Transcript is the complete recorded exchange for one debate run. It is
// built by the orchestrator and read-only once handed to the judge.
type Transcript struct {
	DebaterX Entry `json:"debater_x"`
	DebaterY Entry `json:"debater_y"`
}

// opening returns the opening recorded for the named side, or nil
func (t *Transcript) opening(w Winner) *OpeningArgument {
	switch w {
	case WinnerX:
		return t.DebaterX.Opening
	case WinnerY:
		return t.DebaterY.Opening
	}
	return nil
}

// Decision is the judge's validated verdict. Synthesis is populated for
// vanilla and hybrid runs; SynthesisIRAC for irac runs.
type Decision struct {
	Rationale     string   `json:"rationale"`
	Winner        Winner   `json:"winner"`
	Decision      Position `json:"decision"`
	Synthesis     string   `json:"synthesis,omitempty"`
	SynthesisIRAC *IRAC    `json:"synthesis_irac,omitempty"`
}

// DebaterState is the immutable state a debater carries between its opening
// and its rebuttal: the position it defends and the opening that committed it.
type DebaterState struct {
	Position Position
	Opening  *OpeningArgument
}
