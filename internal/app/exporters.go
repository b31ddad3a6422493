package app

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
)

// Export formats
const (
	FormatCSV  = "csv"
	FormatJSON = "json"

	ErrInvalidFormat    = "Invalid format"
	ErrUnknownActivity  = "Unknown activity"
	ErrFailedToGenerate = "Failed to generate export"
)

// HandleExport downloads the participant roster of one activity as shown on
// the page. URL: /export?activity=Chess%20Club&format=csv
func (s *Server) HandleExport(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	name := r.URL.Query().Get("activity")
	format := r.URL.Query().Get("format")
	if format == "" {
		format = FormatCSV
	}
	if format != FormatCSV && format != FormatJSON {
		http.Error(w, ErrInvalidFormat, http.StatusBadRequest)
		return
	}

	v, err := s.client.View(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Error reading page", "error", err)
		http.Error(w, ErrInternalServer, http.StatusInternalServerError)
		return
	}

	card, ok := v.Card(name)
	if !ok {
		http.Error(w, ErrUnknownActivity, http.StatusNotFound)
		return
	}

	switch format {
	case FormatCSV:
		GenerateCSV(w, card, s.logger)
	case FormatJSON:
		GenerateJSON(w, card, s.logger)
	}
}

func attachment(name, ext string) string {
	return fmt.Sprintf("attachment; filename*=UTF-8''teilnehmende_%s.%s", url.PathEscape(name), ext)
}

// GenerateCSV writes the roster of card as CSV
func GenerateCSV(w http.ResponseWriter, card CardView, logger *slog.Logger) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", attachment(card.Name, FormatCSV))

	cw := csv.NewWriter(w)
	rows := [][]string{{"Aktivität", "Nr", "E-Mail"}}
	for i, email := range card.Participants {
		rows = append(rows, []string{card.Name, fmt.Sprint(i + 1), email})
	}
	if err := cw.WriteAll(rows); err != nil {
		logger.Error("Error writing CSV export", "error", err)
	}
}

// GenerateJSON writes the roster of card as JSON
func GenerateJSON(w http.ResponseWriter, card CardView, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", attachment(card.Name, FormatJSON))

	participants := card.Participants
	if participants == nil {
		participants = []string{}
	}
	data := map[string]interface{}{
		"activity":     card.Name,
		"spots":        card.Spots,
		"participants": participants,
	}

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Error encoding JSON export", "error", err)
		http.Error(w, ErrFailedToGenerate, http.StatusInternalServerError)
	}
}
