package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/pkordes/packrat/internal/domain"
	"github.com/pkordes/packrat/internal/handler/api"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{"day", "name", "category", "quantity", "packed", "event"}

// GetExport handles GET /trips/{tripId}/export.
// It returns the trip's packing list as a flat table ordered by day.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	tripID, ok := tripPath(w, r)
	if !ok {
		return
	}
	format, ok := exportFormat(w, r)
	if !ok {
		return
	}

	rows, err := s.packing.Export(r.Context(), currentUser(r).ID, tripID)
	if err != nil {
		s.writeServiceError(w, r, err, tripNotFound)
		return
	}

	if format == api.Csv {
		buf := buildCSV(rows)
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="packing-list-`+tripID.String()+`.csv"`)
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		w.WriteHeader(http.StatusOK)
		_, _ = buf.WriteTo(w)
		return
	}
	writeJSON(w, http.StatusOK, buildJSONRows(rows))
}

// buildJSONRows converts domain rows to the JSON contract rows.
func buildJSONRows(rows []domain.ExportRow) []api.ExportRow {
	out := make([]api.ExportRow, 0, len(rows))
	for _, r := range rows {
		r := r // per-iteration copy; &r.Event is retained below
		row := api.ExportRow{
			Day:      r.Day,
			Name:     r.Name,
			Category: string(r.Category),
			Quantity: r.Quantity,
			Packed:   r.Packed,
		}
		if r.Event != "" {
			row.Event = &r.Event
		}
		out = append(out, row)
	}
	return out
}

// buildCSV encodes domain rows as CSV. Items that did not come from an event
// have an empty event column.
func buildCSV(rows []domain.ExportRow) *bytes.Buffer {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	// bytes.Buffer writes never fail.
	_ = w.Write(csvHeaders)
	for _, r := range rows {
		_ = w.Write([]string{
			strconv.Itoa(r.Day),
			r.Name,
			string(r.Category),
			strconv.Itoa(r.Quantity),
			strconv.FormatBool(r.Packed),
			r.Event,
		})
	}
	w.Flush()
	return &buf
}
