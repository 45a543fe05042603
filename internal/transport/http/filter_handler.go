package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"gearmatch/internal/app"
	"gearmatch/internal/domain"
	"gearmatch/internal/quiz"
	"gearmatch/internal/recommend"
	"github.com/go-playground/validator/v10"
)

const defaultMaxCandidates = 200

// FilterRequest is the candidate pre-filter request body.
type FilterRequest struct {
	Category      string         `json:"category" validate:"required,oneof=mouse audio keyboard monitor"`
	Answers       map[string]any `json:"answers" validate:"required"`
	MaxCandidates int            `json:"maxCandidates" validate:"omitempty,min=1,max=500"`
}

// FilterResponse lists the surviving candidate ids, capped at MaxCandidates.
type FilterResponse struct {
	CandidateIDs       []string        `json:"candidateIds"`
	TotalProducts      int             `json:"totalProducts"`
	TotalCandidates    int             `json:"totalCandidates"`
	ReturnedCandidates int             `json:"returnedCandidates"`
	Category           domain.Category `json:"category"`
}

// Issue is a single per-field validation problem.
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error   string  `json:"error"`
	Details []Issue `json:"details,omitempty"`
}

// FilterHandler serves POST /api/products/filter: body schema validation,
// category-specific answer validation, then the category predicate mirror
// (hard pre-filters plus the soft price-tier cutoff).
type FilterHandler struct {
	catalogs app.CatalogRepository
	validate *validator.Validate
}

func NewFilterHandler(catalogs app.CatalogRepository) *FilterHandler {
	return &FilterHandler{
		catalogs: catalogs,
		validate: validator.New(),
	}
}

func (h *FilterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}

	var req FilterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", fieldIssues(err))
		return
	}
	category := domain.Category(req.Category)
	if issues := validateAnswers(category, req.Answers); len(issues) > 0 {
		writeError(w, http.StatusBadRequest, "invalid answers", issues)
		return
	}
	if req.MaxCandidates == 0 {
		req.MaxCandidates = defaultMaxCandidates
	}

	products, err := h.catalogs.Products(r.Context(), category)
	if err != nil {
		if errors.Is(err, domain.ErrCatalogNotFound) {
			writeError(w, http.StatusNotFound, "product catalog not found", nil)
			return
		}
		log.Printf("filter: load catalog %s: %v", category, err)
		writeError(w, http.StatusInternalServerError, "failed to load product catalog", nil)
		return
	}

	keep := recommend.CandidatePredicate(category)
	answers := domain.Answers(req.Answers)
	candidates := make([]string, 0, len(products))
	for _, p := range products {
		if keep(answers, p) {
			candidates = append(candidates, p.ID)
		}
	}

	resp := FilterResponse{
		CandidateIDs:    candidates,
		TotalProducts:   len(products),
		TotalCandidates: len(candidates),
		Category:        category,
	}
	if len(resp.CandidateIDs) > req.MaxCandidates {
		resp.CandidateIDs = resp.CandidateIDs[:req.MaxCandidates]
	}
	resp.ReturnedCandidates = len(resp.CandidateIDs)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// validateAnswers checks answer values against the category's question
// catalog: known question ids, option ids from the authored option lists,
// and the single/multi-select shape.
func validateAnswers(category domain.Category, answers map[string]any) []Issue {
	questions := quiz.QuestionsFor(category)
	byID := make(map[string]domain.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	var issues []Issue
	for id := range answers {
		q, ok := byID[id]
		if !ok {
			issues = append(issues, Issue{Field: "answers." + id, Message: "unknown question id"})
			continue
		}
		options := make(map[string]bool, len(q.Options))
		for _, o := range q.Options {
			options[o.ID] = true
		}
		selected, ok := domain.Answers(answers).Strings(id)
		if !ok {
			issues = append(issues, Issue{Field: "answers." + id, Message: "value must be an option id or a list of option ids"})
			continue
		}
		if !q.MultiSelect && len(selected) > 1 {
			issues = append(issues, Issue{Field: "answers." + id, Message: "question is single-select"})
			continue
		}
		for _, s := range selected {
			if !options[s] {
				issues = append(issues, Issue{Field: "answers." + id, Message: fmt.Sprintf("unknown option %q", s)})
			}
		}
	}
	return issues
}

func fieldIssues(err error) []Issue {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []Issue{{Field: "", Message: err.Error()}}
	}
	issues := make([]Issue, 0, len(verrs))
	for _, fe := range verrs {
		issues = append(issues, Issue{
			Field:   fe.Field(),
			Message: fmt.Sprintf("failed %q validation", fe.Tag()),
		})
	}
	return issues
}

func writeError(w http.ResponseWriter, status int, msg string, details []Issue) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: msg, Details: details})
}
