package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"

	"github.com/todmy/legal-debate/internal/auth"
	"github.com/todmy/legal-debate/internal/debate"
	"github.com/todmy/legal-debate/internal/storage"
	"github.com/todmy/legal-debate/pkg/models"
)

func toArgumentModel(a *storage.Argument) models.Argument {
	return models.Argument{
		ID:       a.ID.String(),
		RunID:    a.RunID.String(),
		Side:     a.Side,
		Phase:    a.Phase,
		Position: a.Position,
		Text:     a.Text,
	}
}

func toDebateRunModel(run *storage.DebateRun, full bool) models.DebateRun {
	resp := models.DebateRun{
		ID:          run.ID.String(),
		QuestionID:  run.QuestionID.String(),
		Variant:     run.Variant,
		PositionX:   run.PositionX,
		PositionY:   run.PositionY,
		Winner:      run.Winner,
		FinalAnswer: run.FinalAnswer,
		Correct:     run.Correct,
		Model:       run.Model,
	}
	if full {
		resp.Transcript = run.Transcript
		resp.Decision = run.Decision
	}
	return resp
}

// handleCreateDebate runs one debate over a stored question and persists the
// result. The run is synchronous: the response carries the full transcript
// and decision.
func (s *Server) handleCreateDebate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		QuestionID string `json:"question_id"`
		Variant    string `json:"variant"`
		AssignX    string `json:"assign_x"`
		AssignY    string `json:"assign_y"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	questionID, err := uuid.Parse(req.QuestionID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid question ID")
		return
	}

	variant, err := debate.ParseVariant(req.Variant)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	question, err := s.questionRepo.GetByID(r.Context(), questionID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load question")
		return
	}
	if question == nil {
		respondError(w, http.StatusNotFound, "question not found")
		return
	}

	claims, ok := auth.GetUserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	userID, err := claims.ParseUserID()
	if err != nil {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	result, err := debate.RunDebate(r.Context(), s.llmClient, debate.RunRequest{
		Question:      question.Question,
		PromptContext: question.Prompt,
		Choices:       question.Choices(),
		Variant:       variant,
		AssignX:       debate.Position(req.AssignX),
		AssignY:       debate.Position(req.AssignY),
	})
	if err != nil {
		respondError(w, debateErrorStatus(err), err.Error())
		return
	}

	transcriptJSON, err := json.Marshal(result.Transcript)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to encode transcript")
		return
	}
	decisionJSON, err := json.Marshal(result.Decision)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to encode decision")
		return
	}

	run := &storage.DebateRun{
		QuestionID:  question.ID,
		UserID:      userID,
		Variant:     string(variant),
		PositionX:   string(result.Transcript.DebaterX.Opening.Position),
		PositionY:   string(result.Transcript.DebaterY.Opening.Position),
		Winner:      string(result.Decision.Winner),
		FinalAnswer: string(result.Decision.Decision),
		Correct:     strings.EqualFold(string(result.Decision.Decision), question.Answer),
		Model:       s.llmClient.Model(),
		Transcript:  transcriptJSON,
		Decision:    decisionJSON,
	}

	if err := s.runRepo.Create(r.Context(), run); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to store debate run")
		return
	}

	// Argument embeddings feed the similarity search; losing them does not
	// invalidate the run itself
	if err := s.storeArguments(r, run.ID, result.Transcript); err != nil {
		log.Printf("failed to store argument embeddings for run %s: %v", run.ID, err)
	}

	respondJSON(w, http.StatusCreated, toDebateRunModel(run, true))
}

func (s *Server) handleGetDebate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "debateID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid debate ID")
		return
	}

	run, err := s.runRepo.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load debate run")
		return
	}
	if run == nil {
		respondError(w, http.StatusNotFound, "debate run not found")
		return
	}

	arguments, err := s.argumentRepo.GetByRunID(r.Context(), run.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load arguments")
		return
	}

	resp := toDebateRunModel(run, true)
	for _, a := range arguments {
		resp.Arguments = append(resp.Arguments, toArgumentModel(a))
	}

	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListDebates(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.GetUserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	userID, err := claims.ParseUserID()
	if err != nil {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	runs, err := s.runRepo.ListByUserID(r.Context(), userID, limit, offset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list debate runs")
		return
	}

	resp := make([]models.DebateRun, 0, len(runs))
	for _, run := range runs {
		resp = append(resp, toDebateRunModel(run, false))
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"debates": resp})
}

// storeArguments embeds each argument text and stores it for similarity
// search
func (s *Server) storeArguments(r *http.Request, runID uuid.UUID, transcript *debate.Transcript) error {
	type pending struct {
		side     string
		phase    string
		position string
		text     string
	}

	var items []pending
	add := func(side string, entry debate.Entry) {
		if entry.Opening != nil {
			items = append(items, pending{
				side:     side,
				phase:    "opening",
				position: string(entry.Opening.Position),
				text:     openingText(entry.Opening),
			})
		}
		if entry.Rebuttal != nil {
			items = append(items, pending{
				side:     side,
				phase:    "rebuttal",
				position: string(entry.Opening.Position),
				text:     rebuttalBody(entry.Rebuttal),
			})
		}
	}
	add("debater_x", transcript.DebaterX)
	add("debater_y", transcript.DebaterY)

	texts := make([]string, len(items))
	for i, it := range items {
		texts[i] = it.text
	}

	vectors, err := s.embedder.EmbedTexts(r.Context(), texts)
	if err != nil {
		return err
	}
	if len(vectors) != len(items) {
		return fmt.Errorf("expected %d embeddings, got %d", len(items), len(vectors))
	}

	arguments := make([]*storage.Argument, len(items))
	for i, it := range items {
		arguments[i] = &storage.Argument{
			RunID:     runID,
			Side:      it.side,
			Phase:     it.phase,
			Position:  it.position,
			Text:      it.text,
			Embedding: pgvector.NewVector(vectors[i]),
		}
	}

	return s.argumentRepo.CreateBatch(r.Context(), arguments)
}

// openingText flattens an opening into plain text for embedding
func openingText(o *debate.OpeningArgument) string {
	if o.IRAC != nil {
		return strings.Join([]string{o.IRAC.Issue, o.IRAC.Rule, o.IRAC.Application, o.IRAC.Conclusion}, "\n")
	}
	return o.Argument
}

// rebuttalBody flattens a rebuttal into plain text for embedding
func rebuttalBody(r *debate.Rebuttal) string {
	if r.Critique != nil {
		return strings.Join([]string{
			r.Critique.IssueCritique,
			r.Critique.RuleCritique,
			r.Critique.ApplicationCritique,
			r.Critique.MyReinforcement,
		}, "\n")
	}
	if len(r.Counterarguments) > 0 {
		return r.Text + "\n" + strings.Join(r.Counterarguments, "\n")
	}
	return r.Text
}

// debateErrorStatus maps debate failures to HTTP statuses: malformed model
// output and protocol violations are upstream failures, everything else is
// internal
func debateErrorStatus(err error) int {
	var schemaErr *debate.SchemaError
	var seqErr *debate.SequenceError
	var consErr *debate.ConsistencyError
	if errors.As(err, &schemaErr) || errors.As(err, &seqErr) || errors.As(err, &consErr) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadGateway
}
