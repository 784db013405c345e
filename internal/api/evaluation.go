package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/todmy/legal-debate/internal/citations"
	"github.com/todmy/legal-debate/internal/debate"
	"github.com/todmy/legal-debate/internal/evaluation"
	"github.com/todmy/legal-debate/internal/storage"
)

// evaluateRun scores one stored run against the question's gold passage:
// citation F1, semantic similarity, and on request an LLM rubric grade
func (s *Server) evaluateRun(r *http.Request, run *storage.DebateRun, question *storage.Question, withRubric bool) (evaluation.Result, error) {
	var decision debate.Decision
	if err := json.Unmarshal(run.Decision, &decision); err != nil {
		return evaluation.Result{}, err
	}

	prediction := decision.Synthesis
	if prediction == "" && decision.SynthesisIRAC != nil {
		prediction = decision.SynthesisIRAC.Conclusion
	}
	if prediction == "" {
		prediction = decision.Rationale
	}
	reference := question.GoldPassage

	result := evaluation.Result{
		CitationF1: evaluation.CitationF1(citations.Extract(prediction), citations.Extract(reference)),
	}

	semantic, err := evaluation.NewSemanticScorer(s.embedder).Score(r.Context(), prediction, reference)
	if err != nil {
		return evaluation.Result{}, err
	}
	result.Semantic = semantic

	if withRubric {
		scores := evaluation.NewRubricGrader(s.graderClient).Grade(r.Context(), question.Question, prediction, reference)
		result.Rubric = &scores
	}

	return result, nil
}

// handleEvaluateDebate scores a single stored run (?rubric=true adds the LLM
// rubric grade)
func (s *Server) handleEvaluateDebate(w http.ResponseWriter, r *http.Request) {
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

	question, err := s.questionRepo.GetByID(r.Context(), run.QuestionID)
	if err != nil || question == nil {
		respondError(w, http.StatusInternalServerError, "failed to load question")
		return
	}

	result, err := s.evaluateRun(r, run, question, r.URL.Query().Get("rubric") == "true")
	if err != nil {
		respondError(w, http.StatusBadGateway, "evaluation failed: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"run_id":     run.ID.String(),
		"correct":    run.Correct,
		"evaluation": result,
	})
}

// handleEvaluateQuestion scores every stored run for a question and reports
// per-metric means plus answer accuracy across them
func (s *Server) handleEvaluateQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "questionID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid question ID")
		return
	}

	question, err := s.questionRepo.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load question")
		return
	}
	if question == nil {
		respondError(w, http.StatusNotFound, "question not found")
		return
	}

	runs, err := s.runRepo.GetByQuestionID(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load debate runs")
		return
	}

	withRubric := r.URL.Query().Get("rubric") == "true"

	results := make([]evaluation.Result, 0, len(runs))
	correct := 0
	for _, run := range runs {
		result, err := s.evaluateRun(r, run, question, withRubric)
		if err != nil {
			respondError(w, http.StatusBadGateway, "evaluation failed: "+err.Error())
			return
		}
		results = append(results, result)
		if run.Correct {
			correct++
		}
	}

	accuracy := 0.0
	if len(runs) > 0 {
		accuracy = float64(correct) / float64(len(runs))
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"question_id": question.ID.String(),
		"accuracy":    accuracy,
		"aggregate":   evaluation.Aggregate(results),
	})
}
