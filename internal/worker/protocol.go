package worker

import (
	"gearmatch/internal/domain"
	"gearmatch/internal/recommend"
)

// Message types exchanged with the background worker.
const (
	TypeScore  = "score"
	TypeResult = "result"
	TypeError  = "error"
)

// Request asks the worker for one scoring run. IDs increase monotonically
// per dispatcher; correctness rests on id correlation, never on arrival
// order.
type Request struct {
	ID           uint64            `json:"id"`
	Type         string            `json:"type"`
	Category     domain.Category   `json:"category"`
	Answers      domain.Answers    `json:"answers"`
	Options      recommend.Options `json:"options,omitempty"`
	CandidateIDs []string          `json:"candidateIds,omitempty"`
}

// Response carries either a result or an error back for one request id.
type Response struct {
	ID    uint64                       `json:"id"`
	Type  string                       `json:"type"`
	Data  *domain.RecommendationResult `json:"data,omitempty"`
	Error string                       `json:"error,omitempty"`
}
