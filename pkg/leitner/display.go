package leitner

import (
	"fmt"
	"strings"
	"time"
)

// BoxSymbol renders a box level as filled and empty stars, box 3 of 5 being
// "★★★☆☆".
func BoxSymbol(box int) string {
	if box < 0 {
		box = 0
	}
	if box > MaxBox {
		box = MaxBox
	}
	return strings.Repeat("★", box) + strings.Repeat("☆", MaxBox-box)
}

// RelativeDue renders a due time relative to today: "Today", "Tomorrow", a
// weekday name within the same week, "Next week", or "In N days". Past-due
// and far-future times render empty.
func RelativeDue(due, now time.Time) string {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, due.Location())

	switch {
	case day.Before(today):
		return ""
	case day.Equal(today):
		return "Today"
	case day.Equal(today.AddDate(0, 0, 1)):
		return "Tomorrow"
	}

	days := int(day.Sub(today).Hours() / 24)
	dy, dw := day.ISOWeek()
	ty, tw := today.ISOWeek()
	switch {
	case dy == ty && dw == tw:
		return day.Weekday().String()
	case days <= 7:
		return "Next week"
	case days <= 10:
		return fmt.Sprintf("In %d days", days)
	}
	return ""
}
