package papers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/papergen/backend/internal/auth"
	"github.com/papergen/backend/internal/models"
	"github.com/papergen/backend/internal/planner"
)

type Handler struct {
	service *Service
	store   *Store
}

func NewHandler(service *Service, store *Store) *Handler {
	return &Handler{service: service, store: store}
}

// GeneratePaper handles POST /api/v1/papers/generate. Everything that can
// reject the request wholesale (validation, planning, usage gate) runs
// before the stream opens; after the first event is written the only
// responses are stream events.
func (h *Handler) GeneratePaper(w http.ResponseWriter, r *http.Request) {
	var req models.GeneratePaperRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if msg := validateRequest(req); msg != "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: msg})
		return
	}

	userID, _ := auth.UserID(r)
	if userID > 0 {
		decision, err := h.service.Gate().IsAllowed(r.Context(), userID)
		if err != nil {
			log.Printf("WARN: usage check failed for user %d: %v", userID, err)
			writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
			return
		}
		if !decision.Allowed {
			writeJSON(w, http.StatusForbidden, map[string]any{
				"error":     "Monthly paper limit reached",
				"tier":      decision.Tier,
				"remaining": decision.Remaining,
			})
			return
		}
	}

	plan, err := h.service.Plan(req)
	if err != nil {
		var planErr *planner.PlanError
		if errors.As(err, &planErr) {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: planErr.Reason})
			return
		}
		log.Printf("WARN: planning failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		return
	}

	stream, err := NewStreamWriter(w, r)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Streaming not supported"})
		return
	}

	log.Printf("[papers] generating %d questions: %s %s %s",
		plan.TotalQuestions(), req.ExamBoard, req.Qualification, req.Subject)

	h.service.Generate(r.Context(), userID, req, plan, stream.Send)
}

// GetPaper handles GET /api/v1/papers/{id}.
func (h *Handler) GetPaper(w http.ResponseWriter, r *http.Request) {
	paperID := mux.Vars(r)["id"]

	paper, err := h.store.GetPaper(r.Context(), paperID)
	if err == sql.ErrNoRows {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Paper not found"})
		return
	}
	if err != nil {
		log.Printf("WARN: failed to load paper %s: %v", paperID, err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, paper)
}

func validateRequest(req models.GeneratePaperRequest) string {
	switch {
	case req.ExamBoard == "":
		return "Exam board is required"
	case req.Qualification == "":
		return "Qualification is required"
	case req.Subject == "":
		return "Subject is required"
	case req.Config == nil:
		return "Paper config is required"
	case req.Config.TotalMarks <= 0:
		return "Total marks must be positive"
	case len(req.Config.Sections) == 0:
		return "At least one section is required"
	case len(req.Config.SelectedSubtopics) == 0:
		return "At least one topic must be selected"
	}
	for qt := range req.Config.QuestionTypeDistribution {
		if !models.ValidQuestionTypes[qt] {
			return "Unknown question type: " + string(qt)
		}
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
