// Package estimate predicts how many minutes a todo will take from its title
// and classification. The score is a fixed heuristic, not a schedule.
package estimate

import (
	"strings"
	"time"
	"unicode/utf16"
)

// Input holds the todo fields the heuristic reads. Empty strings count as
// absent.
type Input struct {
	Title     string
	TaskType  string
	Priority  string
	StartTime *time.Time
	Frequency string
	Context   string
}

var (
	taskTypeMinutes = map[string]int{
		"coding":   20,
		"study":    15,
		"shopping": 10,
		"exercise": 5,
	}
	priorityMinutes = map[string]int{
		"high":   15,
		"medium": 10,
		"low":    5,
	}
	frequencyMinutes = map[string]int{
		"daily":  -5,
		"weekly": 5,
	}
	contextMinutes = map[string]int{
		"office": -5,
		"home":   5,
	}
)

// Minutes returns the predicted completion time. The result is not clamped
// and may be negative.
func Minutes(in Input) int {
	minutes := TitleLength(in.Title) * 2
	minutes += taskTypeMinutes[strings.ToLower(in.TaskType)]
	minutes += priorityMinutes[strings.ToLower(in.Priority)]
	minutes += frequencyMinutes[strings.ToLower(in.Frequency)]
	minutes += contextMinutes[strings.ToLower(in.Context)]

	if in.StartTime != nil {
		hour := in.StartTime.Hour()
		if hour < 8 {
			minutes += 10
		}
		if hour >= 19 {
			minutes += 5
		}
	}
	return minutes
}

// TitleLength counts UTF-16 code units, so characters outside the BMP
// count twice.
func TitleLength(title string) int {
	return len(utf16.Encode([]rune(title)))
}
