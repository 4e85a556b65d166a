package streak

import (
	"time"

	"github.com/emberhabits/ember/internal/dateutil"
	"github.com/emberhabits/ember/internal/models"
)

const (
	// HeatmapWeeks is the fixed window width of the calendar heatmap.
	HeatmapWeeks = 16
	// DaysInWeek is always 7; named for readability at call sites.
	DaysInWeek = 7
	// HeatmapDays is the number of real calendar days in the window.
	HeatmapDays = HeatmapWeeks * DaysInWeek
)

// Cell is one day in the heatmap. Padding cells (inserted so the first real
// day aligns to its weekday row) have an empty Date and are distinguishable
// from real zero-intensity days.
type Cell struct {
	Date   string // YYYY-MM-DD, empty for padding
	Bucket int    // 0..4
}

// Padding reports whether the cell is an alignment placeholder.
func (c Cell) Padding() bool {
	return c.Date == ""
}

// Bucket maps a completed/total ratio onto the five intensity levels:
// 0 -> 0, (0,0.25] -> 1, (0.25,0.5] -> 2, (0.5,0.75] -> 3, (0.75,1] -> 4.
// Zero active habits always yields 0.
func Bucket(completed, habitCount int) int {
	if habitCount == 0 || completed <= 0 {
		return 0
	}
	ratio := float64(completed) / float64(habitCount)
	switch {
	case ratio <= 0.25:
		return 1
	case ratio <= 0.5:
		return 2
	case ratio <= 0.75:
		return 3
	default:
		return 4
	}
}

// Window lays the 16-week window ending at end into week-columns of 7 cells,
// weeks starting Sunday. The window always covers exactly HeatmapDays real
// days; the first column is left-padded so each real day lands on its
// weekday row. Trailing cells of the final column are padding when the
// window does not end on a Saturday.
func Window(end time.Time, logs []models.DailyLog, habitCount int) [][]Cell {
	days := dateutil.DayRange(end, HeatmapDays)
	idx := IndexLogs(logs)

	first, err := dateutil.ParseDate(days[0])
	if err != nil {
		return nil
	}

	cells := make([]Cell, 0, len(days)+DaysInWeek)
	for i := 0; i < int(first.Weekday()); i++ {
		cells = append(cells, Cell{})
	}
	for _, day := range days {
		cells = append(cells, Cell{
			Date:   day,
			Bucket: Bucket(idx[day].CompletedCount(), habitCount),
		})
	}
	for len(cells)%DaysInWeek != 0 {
		cells = append(cells, Cell{})
	}

	weeks := make([][]Cell, 0, len(cells)/DaysInWeek)
	for i := 0; i < len(cells); i += DaysInWeek {
		weeks = append(weeks, cells[i:i+DaysInWeek])
	}
	return weeks
}
