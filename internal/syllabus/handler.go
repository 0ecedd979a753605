package syllabus

import (
	"encoding/json"
	"net/http"
)

// TopicsHandler handles GET /api/v1/syllabus/topics. The frontend uses it
// to populate the topic picker before building a paper config.
func TopicsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	subject := q.Get("subject")
	if subject == "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "subject is required"})
		return
	}

	topics := TopicsFor(subject, q.Get("exam_board"), q.Get("qualification"))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"subject":        subject,
		"classification": Classify(subject),
		"topics":         topics,
	})
}
