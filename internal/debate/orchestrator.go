package debate

import (
	"context"
	"fmt"
)

// runPhase tracks where a debate run is in its fixed phase order
type runPhase int

const (
	phaseInit runPhase = iota
	phaseXOpened
	phaseYOpened
	phaseXRebutted
	phaseYRebutted
	phaseDecided
)

var phaseNames = map[runPhase]string{
	phaseInit:      "INIT",
	phaseXOpened:   "X_OPENED",
	phaseYOpened:   "Y_OPENED",
	phaseXRebutted: "X_REBUTTED",
	phaseYRebutted: "Y_REBUTTED",
	phaseDecided:   "DECIDED",
}

// RunRequest describes one debate to orchestrate. AssignX/AssignY are
// optional: an empty Position lets that debater choose its answer freely.
type RunRequest struct {
	Question      string
	PromptContext string
	Choices       []string
	Variant       Variant
	AssignX       Position
	AssignY       Position
}

// RunResult is the completed debate: the full transcript and the judge's
// validated decision
type RunResult struct {
	Transcript *Transcript `json:"transcript"`
	Decision   *Decision   `json:"decision"`
}

// Orchestrator sequences two debaters and one judge through the fixed phase
// order. Instances are single-use: each debate run gets its own orchestrator
// so no state is shared between runs.
type Orchestrator struct {
	debaterX *Debater
	debaterY *Debater
	judge    *Judge
	phase    runPhase
}

// NewOrchestrator creates a single-run orchestrator over a fresh
// debater/judge trio backed by the given generation client
func NewOrchestrator(client Generator) *Orchestrator {
	return &Orchestrator{
		debaterX: NewDebater(client, "Debater X"),
		debaterY: NewDebater(client, "Debater Y"),
		judge:    NewJudge(client),
	}
}

// transition enforces the strict phase order; a mismatch is an orchestration
// bug, not a data problem
func (o *Orchestrator) transition(from, to runPhase) error {
	if o.phase != from {
		return &SequenceError{
			Op:     phaseNames[to],
			Reason: fmt.Sprintf("requires phase %s, current phase is %s", phaseNames[from], phaseNames[o.phase]),
		}
	}
	o.phase = to
	return nil
}

// Run executes one complete debate: X opens, Y opens, X rebuts Y's opening,
// Y rebuts X's opening, the judge decides. Any validation or generation
// failure aborts the run; there is no partial result.
func (o *Orchestrator) Run(ctx context.Context, req RunRequest) (*RunResult, error) {
	if len(req.Choices) != NumChoices {
		return nil, fmt.Errorf("debate requires exactly %d answer choices, got %d", NumChoices, len(req.Choices))
	}
	if req.AssignX != "" && !req.AssignX.IsValid() {
		return nil, fmt.Errorf("invalid position assignment %q for debater X", req.AssignX)
	}
	if req.AssignY != "" && !req.AssignY.IsValid() {
		return nil, fmt.Errorf("invalid position assignment %q for debater Y", req.AssignY)
	}

	transcript := &Transcript{}

	xOpening, err := o.debaterX.Open(ctx, req.Question, req.PromptContext, req.Choices, req.AssignX, req.Variant)
	if err != nil {
		return nil, fmt.Errorf("debater X opening: %w", err)
	}
	if err := o.transition(phaseInit, phaseXOpened); err != nil {
		return nil, err
	}
	transcript.DebaterX.Opening = xOpening

	yOpening, err := o.debaterY.Open(ctx, req.Question, req.PromptContext, req.Choices, req.AssignY, req.Variant)
	if err != nil {
		return nil, fmt.Errorf("debater Y opening: %w", err)
	}
	if err := o.transition(phaseXOpened, phaseYOpened); err != nil {
		return nil, err
	}
	transcript.DebaterY.Opening = yOpening

	xRebuttal, err := o.debaterX.Rebut(ctx, req.Question, req.PromptContext, yOpening, req.Variant)
	if err != nil {
		return nil, fmt.Errorf("debater X rebuttal: %w", err)
	}
	if err := o.transition(phaseYOpened, phaseXRebutted); err != nil {
		return nil, err
	}
	transcript.DebaterX.Rebuttal = xRebuttal

	yRebuttal, err := o.debaterY.Rebut(ctx, req.Question, req.PromptContext, xOpening, req.Variant)
	if err != nil {
		return nil, fmt.Errorf("debater Y rebuttal: %w", err)
	}
	if err := o.transition(phaseXRebutted, phaseYRebutted); err != nil {
		return nil, err
	}
	transcript.DebaterY.Rebuttal = yRebuttal

	decision, err := o.judge.Decide(ctx, req.Question, req.PromptContext, req.Choices, transcript, req.Variant)
	if err != nil {
		return nil, fmt.Errorf("judge decision: %w", err)
	}
	if err := o.transition(phaseYRebutted, phaseDecided); err != nil {
		return nil, err
	}

	return &RunResult{Transcript: transcript, Decision: decision}, nil
}

// RunDebate is the package-level entry point: it instantiates a fresh
// orchestrator and runs one debate to completion.
func RunDebate(ctx context.Context, client Generator, req RunRequest) (*RunResult, error) {
	return NewOrchestrator(client).Run(ctx, req)
}
