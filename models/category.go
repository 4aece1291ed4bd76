package models

import (
	"errors"
	"fmt"
)

var ErrUnknownCategory = errors.New("unknown event category")

var AttendedCategories = []string{
	"community",
	"concerts",
	"conferences",
	"expos",
	"festivals",
	"performing-arts",
	"sports",
}

var NonAttendedCategories = []string{
	"academic",
	"daylight-savings",
	"observances",
	"politics",
	"public-holidays",
	"school-holidays",
}

var UnscheduledCategories = []string{
	"airport-delays",
	"disasters",
	"health-warnings",
	"severe-weather",
	"terror",
}

// CategoryVocabularies groups the three disjoint vocabularies for the UI.
type CategoryVocabularies struct {
	Attended    []string `json:"attended"`
	NonAttended []string `json:"non_attended"`
	Unscheduled []string `json:"unscheduled"`
	Default     []string `json:"default"`
}

func Categories() CategoryVocabularies {
	return CategoryVocabularies{
		Attended:    AttendedCategories,
		NonAttended: NonAttendedCategories,
		Unscheduled: UnscheduledCategories,
		Default:     DefaultCategories(),
	}
}

// AllCategories returns attended, non-attended and unscheduled tags in order.
func AllCategories() []string {
	out := make([]string, 0, len(AttendedCategories)+len(NonAttendedCategories)+len(UnscheduledCategories))
	out = append(out, AttendedCategories...)
	out = append(out, NonAttendedCategories...)
	return append(out, UnscheduledCategories...)
}

func DefaultCategories() []string {
	return append([]string(nil), AttendedCategories...)
}

// NormalizeCategories validates the tags and drops duplicates, keeping the
// first-seen order.
func NormalizeCategories(tags []string) ([]string, error) {
	known := make(map[string]struct{})
	for _, c := range AllCategories() {
		known[c] = struct{}{}
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if _, ok := known[t]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, t)
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out, nil
}
