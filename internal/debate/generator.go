package debate

import (
	"context"
	"encoding/json"
)

// Generator is the reasoning collaborator: prompt in, structured JSON out.
// Failures (network, malformed JSON) surface as the client's GenerationError
// and are propagated unchanged; the debate core never retries.
type Generator interface {
	GenerateStructured(ctx context.Context, prompt string, maxTokens int) (json.RawMessage, error)
}
