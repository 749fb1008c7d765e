package commands

import (
	"fmt"
	"time"
)

// dueLayouts are the accepted due-date formats, tried in order.
// Layouts without an offset are interpreted in local time.
var dueLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02",
}

func parseDueFlag(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	for _, layout := range dueLayouts {
		if layout == time.RFC3339 {
			if t, err := time.Parse(layout, value); err == nil {
				return &t, nil
			}
			continue
		}
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid due date %q (want RFC3339, %q, or %q)", value, dueLayouts[1], dueLayouts[2])
}
