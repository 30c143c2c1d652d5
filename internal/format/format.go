// Package format contains pure display-formatting helpers for event
// fields.  Nothing here holds state; every function maps raw feed
// values to the strings shown on the page.
package format

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/livingroombaithaks/baithak-booking/internal/model"
)

// OrdinalSuffix returns the English ordinal suffix for a day of the
// month (1st, 2nd, 3rd, 4th, ... 11th, 12th, 13th, 21st ...).
func OrdinalSuffix(day int) string {
	if day > 3 && day < 21 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}

// Date renders an ISO date string as "16th November 2025, Saturday".
// Unparseable input is returned unchanged so a bad feed value degrades
// to whatever the feed sent rather than an empty display.
func Date(isoDate string) string {
	t, err := time.Parse("2006-01-02", isoDate)
	if err != nil {
		return isoDate
	}
	return fmt.Sprintf("%d%s %s %d, %s",
		t.Day(), OrdinalSuffix(t.Day()), t.Month().String(), t.Year(), t.Weekday().String())
}

// Time12Hr converts a 24-hour "HH:MM" string to a 12-hour clock with
// an AM/PM suffix: "10:00" -> "10:00 AM", "14:30" -> "2:30 PM".
// Empty or malformed input yields an empty string.
func Time12Hr(time24 string) string {
	parts := strings.SplitN(time24, ":", 2)
	if len(parts) != 2 {
		return ""
	}
	hours, err1 := strconv.Atoi(parts[0])
	minutes, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return ""
	}
	period := "AM"
	if hours >= 12 {
		period = "PM"
	}
	h12 := hours % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:%02d %s", h12, minutes, period)
}

// Artists renders the lineup with Primary artists before
// Accompanists, one "Name (Genre)" entry per line.  An empty lineup
// falls back to "Various Artists".  The sort is stable so artists in
// the same category keep their feed order.
func Artists(artists []model.Artist) string {
	if len(artists) == 0 {
		return "Various Artists"
	}
	order := func(category string) int {
		switch category {
		case "Primary":
			return 0
		case "Accompanist":
			return 1
		default:
			return 2
		}
	}
	sorted := make([]model.Artist, len(artists))
	copy(sorted, artists)
	sort.SliceStable(sorted, func(i, j int) bool {
		return order(sorted[i].Category) < order(sorted[j].Category)
	})
	lines := make([]string, 0, len(sorted))
	for _, a := range sorted {
		lines = append(lines, fmt.Sprintf("%s (%s)", a.Name, a.Genre))
	}
	return strings.Join(lines, "\n")
}

// PrimaryArtistNames returns a comma-separated list of Primary
// artists only, as used on review and confirmation summaries.  Falls
// back to "Various Artists" when no Primary artist is billed.
func PrimaryArtistNames(artists []model.Artist) string {
	names := make([]string, 0, len(artists))
	for _, a := range artists {
		if a.Category == "Primary" {
			names = append(names, a.Name)
		}
	}
	if len(names) == 0 {
		return "Various Artists"
	}
	return strings.Join(names, ", ")
}

// TimeBlock renders the concert/meal schedule lines for an event.
// With no meal information only the concert line is produced; the meal
// line is placed before or after depending on meal_order.
func TimeBlock(e *model.Event) string {
	if e.ConcertTime == nil || *e.ConcertTime == "" {
		return ""
	}
	concertTime := Time12Hr(*e.ConcertTime)
	mealType := ""
	if e.MealType != nil && *e.MealType != "" {
		mt := strings.ToLower(*e.MealType)
		mealType = strings.ToUpper(mt[:1]) + mt[1:]
	}
	if e.MealTime == nil || *e.MealTime == "" || e.MealOrder == nil || *e.MealOrder == "" {
		return fmt.Sprintf("%s — Baithak Begins", concertTime)
	}
	mealTime := Time12Hr(*e.MealTime)
	if strings.ToLower(*e.MealOrder) == "before" {
		return fmt.Sprintf("%s — %s followed by Baithak\n%s — Baithak Begins", mealTime, mealType, concertTime)
	}
	return fmt.Sprintf("%s — Baithak\n%s — %s", concertTime, mealTime, mealType)
}

// EventDate returns the display date for an event, preferring the
// feed's pre-formatted display_date when present.
func EventDate(e *model.Event) string {
	if e.DisplayDate != nil && *e.DisplayDate != "" {
		return *e.DisplayDate
	}
	if e.Date != "" {
		return Date(e.Date)
	}
	return "TBA"
}
