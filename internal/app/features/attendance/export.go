// internal/app/features/attendance/export.go
package attendance

import (
	"encoding/csv"
	"net/http"
	"time"

	"github.com/dmcateer/classtrack/internal/app/store/queries/attendanceview"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ExportCSV downloads the sheet for a class and date as CSV.
// GET /attendance/export?class=<id>&date=YYYY-MM-DD
func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	classID, err := primitive.ObjectIDFromHex(r.URL.Query().Get("class"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad class id", err, "Invalid class.", "/attendance")
		return
	}
	date := r.URL.Query().Get("date")
	if _, err := time.Parse(dateLayout, date); err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad date", err, "Invalid date.", "/attendance")
		return
	}

	roster, err := attendanceview.Roster(r.Context(), h.DB, classID, date)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load roster failed", err, "A database error occurred.", "/attendance")
		return
	}

	filename := "attendance-" + date + "-" + uuid.NewString()[:8] + ".csv"
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"student", "email", "date", "status"})
	for _, row := range roster {
		status := row.Status
		if status == "" {
			status = "unmarked"
		}
		_ = cw.Write([]string{row.Student.FullName, row.Student.Email, date, status})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		h.Log.Error("write attendance csv failed", zap.Error(err))
	}
}
