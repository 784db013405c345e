package api

import (
	"encoding/json"
	"net/http"

	"github.com/pgvector/pgvector-go"

	"github.com/todmy/legal-debate/pkg/models"
)

// handleSimilarArguments embeds the query text and returns stored arguments
// close to it in embedding space
func (s *Server) handleSimilarArguments(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text      string  `json:"text"`
		Limit     int     `json:"limit"`
		Threshold float64 `json:"threshold"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Text == "" {
		respondError(w, http.StatusBadRequest, "text is required")
		return
	}

	vector, err := s.embedder.EmbedText(r.Context(), req.Text)
	if err != nil {
		respondError(w, http.StatusBadGateway, "failed to embed query text")
		return
	}

	matches, err := s.argumentRepo.FindSimilar(r.Context(), pgvector.NewVector(vector), req.Limit, req.Threshold)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to search arguments")
		return
	}

	resp := make([]models.SimilarArgument, 0, len(matches))
	for _, m := range matches {
		resp = append(resp, models.SimilarArgument{
			Argument:   toArgumentModel(m.Argument),
			Similarity: m.Similarity,
		})
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"arguments": resp})
}
