package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/todmy/legal-debate/internal/storage"
	"github.com/todmy/legal-debate/pkg/models"
)

func toQuestionModel(q *storage.Question) models.Question {
	return models.Question{
		ID:       q.ID.String(),
		SourceID: q.SourceID,
		Split:    q.Split,
		Prompt:   q.Prompt,
		Question: q.Question,
		Choices:  q.Choices(),
		Answer:   q.Answer,
	}
}

// handleImportQuestions downloads a Bar Exam QA split and stores it. Rows
// already imported for the same split are skipped.
func (s *Server) handleImportQuestions(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Split      string `json:"split"`
		SampleSize int    `json:"sample_size"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Split == "" {
		req.Split = "test"
	}

	loaded, err := s.loader.LoadBarExamQA(r.Context(), req.Split, req.SampleSize)
	if err != nil {
		respondError(w, http.StatusBadGateway, "failed to download question bank: "+err.Error())
		return
	}

	questions := make([]*storage.Question, 0, len(loaded))
	for _, q := range loaded {
		if len(q.Choices) != 4 {
			continue
		}
		questions = append(questions, &storage.Question{
			SourceID:    q.ID,
			Split:       req.Split,
			Prompt:      q.Prompt,
			Question:    q.Question,
			ChoiceA:     q.Choices[0],
			ChoiceB:     q.Choices[1],
			ChoiceC:     q.Choices[2],
			ChoiceD:     q.Choices[3],
			Answer:      q.Answer,
			GoldPassage: q.GoldPassage,
		})
	}

	if err := s.questionRepo.CreateBatch(r.Context(), questions); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to store questions")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"split":    req.Split,
		"imported": len(questions),
	})
}

func (s *Server) handleListQuestions(w http.ResponseWriter, r *http.Request) {
	split := r.URL.Query().Get("split")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	questions, err := s.questionRepo.List(r.Context(), split, limit, offset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list questions")
		return
	}

	resp := make([]models.Question, 0, len(questions))
	for _, q := range questions {
		resp = append(resp, toQuestionModel(q))
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"questions": resp})
}
