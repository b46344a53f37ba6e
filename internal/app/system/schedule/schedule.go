// Package schedule holds the fixed day/slot layout of the timetable grid
// and the pure formatting helpers the views use to label it.
//
// All times are naive wall-clock "HH:MM" strings; there is no timezone or
// locale handling anywhere in this package.
package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// dayNames is indexed by the raw day_of_week integer, 0=Sunday..6=Saturday.
var dayNames = [7]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// displayDays is the fixed column order of the grid: Monday through
// Saturday, then Sunday. These are raw day_of_week values, deliberately
// not derived from any week-start convention.
var displayDays = [7]int{1, 2, 3, 4, 5, 6, 0}

// timeSlots is the fixed set of hourly row labels. An entry whose start
// time falls outside these slots is simply not shown on the grid.
var timeSlots = [9]string{
	"08:00", "09:00", "10:00", "11:00",
	"12:00", "13:00", "14:00", "15:00", "16:00",
}

// DisplayDays returns the grid's column order as day_of_week values.
func DisplayDays() []int {
	days := make([]int, len(displayDays))
	copy(days, displayDays[:])
	return days
}

// TimeSlots returns the grid's row labels in display order.
func TimeSlots() []string {
	slots := make([]string, len(timeSlots))
	copy(slots, timeSlots[:])
	return slots
}

// DayName maps a raw day_of_week integer to its full name.
// Out-of-range values return the empty string.
func DayName(day int) string {
	if day < 0 || day > 6 {
		return ""
	}
	return dayNames[day]
}

// DayAbbrev is the three-letter column header ("Mon", "Sun").
func DayAbbrev(day int) string {
	name := DayName(day)
	if len(name) < 3 {
		return name
	}
	return name[:3]
}

// FormatHour renders an "HH:MM" slot as its 12-hour label: "9AM", "2PM".
// "00:00" maps to "0AM" and "12:00" to "12PM"; minutes are ignored.
// Unparseable input is returned unchanged.
func FormatHour(hhmm string) string {
	hh, _, ok := strings.Cut(hhmm, ":")
	if !ok {
		return hhmm
	}
	hour, err := strconv.Atoi(hh)
	if err != nil {
		return hhmm
	}
	if hour >= 12 {
		if hour != 12 {
			hour -= 12
		}
		return fmt.Sprintf("%dPM", hour)
	}
	return fmt.Sprintf("%dAM", hour)
}

// TruncateToSlot cuts a time string to its "HH:MM" prefix so stored values
// like "09:00:00" compare equal to the slot labels.
func TruncateToSlot(t string) string {
	if len(t) > 5 {
		return t[:5]
	}
	return t
}
