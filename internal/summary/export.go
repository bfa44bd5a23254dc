package summary

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ruchira-b/ETL-pipeline/internal/models"
)

// dateLayout is the fixed calendar-date form used by both export views.
const dateLayout = "2006-01-02"

// reportJSON is the wire form of a report. Dates are normalized to calendar
// date strings; numeric fields keep full precision so the export round-trips
// losslessly.
type reportJSON struct {
	UserID          string          `json:"user_id"`
	TotalPhotos     int64           `json:"total_photos"`
	FirstDate       string          `json:"first_date"`
	LastDate        string          `json:"last_date"`
	BusiestDay      string          `json:"busiest_day"`
	BusiestDayCount int64           `json:"busiest_day_count"`
	AvgPhotosPerDay float64         `json:"avg_photos_per_day"`
	DailyCounts     []dailyJSON     `json:"daily_counts"`
	TypeCounts      []typeCountJSON `json:"type_counts"`
}

type dailyJSON struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type typeCountJSON struct {
	ContentType string `json:"content_type"`
	Count       int64  `json:"count"`
}

// WriteJSON writes the structured machine export of a report.
func WriteJSON(w io.Writer, r *models.Report) error {
	out := reportJSON{
		UserID:          r.Summary.UserID,
		TotalPhotos:     r.Summary.TotalPhotos,
		FirstDate:       r.Summary.FirstDate.Format(dateLayout),
		LastDate:        r.Summary.LastDate.Format(dateLayout),
		BusiestDay:      r.Summary.BusiestDay.Format(dateLayout),
		BusiestDayCount: r.Summary.BusiestDayCount,
		AvgPhotosPerDay: r.Summary.AvgPhotosPerDay,
		DailyCounts:     make([]dailyJSON, 0, len(r.DailyCounts)),
		TypeCounts:      make([]typeCountJSON, 0, len(r.TypeCounts)),
	}
	for _, dc := range r.DailyCounts {
		out.DailyCounts = append(out.DailyCounts, dailyJSON{Date: dc.Day.Format(dateLayout), Count: dc.Count})
	}
	for _, tc := range r.TypeCounts {
		out.TypeCounts = append(out.TypeCounts, typeCountJSON{ContentType: tc.ContentType, Count: tc.Count})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// Digest renders the short human-readable export. Averages are rounded to
// one decimal here, at the presentation boundary only; the underlying report
// keeps full precision.
func Digest(r *models.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Photo Wrapped — %s\n", r.Summary.UserID)
	fmt.Fprintf(&b, "Total Photos: %d\n", r.Summary.TotalPhotos)
	fmt.Fprintf(&b, "First Photo: %s\n", r.Summary.FirstDate.Format(dateLayout))
	fmt.Fprintf(&b, "Last Photo: %s\n", r.Summary.LastDate.Format(dateLayout))
	fmt.Fprintf(&b, "Busiest Day: %s (%d photos)\n", r.Summary.BusiestDay.Format(dateLayout), r.Summary.BusiestDayCount)
	fmt.Fprintf(&b, "Avg Photos/Day: %.1f\n", r.Summary.AvgPhotosPerDay)

	if len(r.TypeCounts) > 0 {
		b.WriteString("By Type:\n")
		for _, tc := range r.TypeCounts {
			fmt.Fprintf(&b, "  %s: %d\n", tc.ContentType, tc.Count)
		}
	}

	return b.String()
}
