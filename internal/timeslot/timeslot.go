// Package timeslot generates the fixed sequence of selectable reservation
// times.  Slot labels ("5:30 PM") are the canonical stored representation
// of a reservation's time; free-text times are never accepted.
package timeslot

import (
	"fmt"
	"strconv"
	"strings"
)

// Generate steps the minute-of-day from start to end inclusive in stepMin
// increments and renders each point as a 12-hour "H:MM AM/PM" label.
// Hours are given in 24-hour form.  A non-positive step or an end before
// the start yields an empty sequence.
func Generate(startHour, startMin, endHour, endMin, stepMin int) []string {
	if stepMin <= 0 {
		return nil
	}
	cur := startHour*60 + startMin
	end := endHour*60 + endMin

	var slots []string
	for ; cur <= end; cur += stepMin {
		slots = append(slots, Label(cur))
	}
	return slots
}

// Label renders a minute-of-day as a 12-hour clock label.
func Label(minuteOfDay int) string {
	h24 := minuteOfDay / 60
	min := minuteOfDay % 60

	suffix := "AM"
	if h24 >= 12 {
		suffix = "PM"
	}
	h12 := h24 % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:%02d %s", h12, min, suffix)
}

// MinuteOfDay parses a slot label back into its minute-of-day.  It is the
// inverse of Label and is used to order reservation lists chronologically,
// since 12-hour labels do not sort lexicographically.  The boolean is
// false for anything that is not a well-formed label.
func MinuteOfDay(label string) (int, bool) {
	clock, suffix, ok := strings.Cut(label, " ")
	if !ok {
		return 0, false
	}
	hs, ms, ok := strings.Cut(clock, ":")
	if !ok {
		return 0, false
	}
	h, err := strconv.Atoi(hs)
	if err != nil || h < 1 || h > 12 {
		return 0, false
	}
	if len(ms) != 2 {
		return 0, false
	}
	m, err := strconv.Atoi(ms)
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	switch suffix {
	case "AM":
		if h == 12 {
			h = 0
		}
	case "PM":
		if h != 12 {
			h += 12
		}
	default:
		return 0, false
	}
	return h*60 + m, true
}

// Contains reports whether label is one of the given slots.
func Contains(slots []string, label string) bool {
	for _, s := range slots {
		if s == label {
			return true
		}
	}
	return false
}
