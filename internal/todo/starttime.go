package todo

import (
	"fmt"
	"time"

	"github.com/shouta256/todo-next-spring/internal/model"
)

// Start times arrive as local date-times with minutes and optional seconds.
var startTimeLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
}

// ParseStartTime parses "yyyy-MM-ddTHH:mm" or "yyyy-MM-ddTHH:mm:ss" as a
// wall-clock time. Anything else fails with a *model.StartTimeError.
func ParseStartTime(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range startTimeLayouts {
		t, err := time.Parse(layout, value)
		if err != nil {
			lastErr = err
			continue
		}
		// time.Parse tolerates fractional seconds and one-digit hours.
		if t.Format(layout) != value {
			lastErr = fmt.Errorf("%q does not match layout %q", value, layout)
			continue
		}
		return t, nil
	}
	return time.Time{}, &model.StartTimeError{Value: value, Err: lastErr}
}
