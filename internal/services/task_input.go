package services

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/elkmoss/gritbot/internal/models"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

const priorityMarker = "[Priority:"

// TaskInput is the normalized form of a raw add/edit command argument.
// Priority is empty when the text carried no recognized marker; callers
// decide the default (Medium on add, previous tier on edit).
type TaskInput struct {
	Description string
	DueAt       *time.Time
	Priority    string
}

var fuzzyDateParser = newFuzzyDateParser()

func newFuzzyDateParser() *when.Parser {
	parser := when.New(nil)
	parser.Add(en.All...)
	parser.Add(common.All...)
	return parser
}

// ParseTaskInput extracts an optional priority marker and an optional
// "by <date>" clause from raw command text. Relative date expressions are
// resolved against now; results are normalized to UTC.
func ParseTaskInput(raw string, now time.Time) (TaskInput, error) {
	description, priority, err := extractPriority(strings.TrimSpace(raw))
	if err != nil {
		return TaskInput{}, err
	}

	description, dueAt, err := extractDueDate(description, now)
	if err != nil {
		return TaskInput{}, err
	}

	return TaskInput{Description: description, DueAt: dueAt, Priority: priority}, nil
}

func extractPriority(text string) (string, string, error) {
	markerIndex := strings.Index(text, priorityMarker)
	if markerIndex < 0 {
		return strings.TrimSpace(text), "", nil
	}

	description := strings.TrimSpace(text[:markerIndex])
	rest := text[markerIndex+len(priorityMarker):]
	closing := strings.Index(rest, "]")
	if closing < 0 {
		return "", "", ErrMalformedPriority
	}

	// A well-formed marker with an unknown word is ignored rather than
	// rejected; the tier stays unspecified.
	switch strings.ToLower(strings.TrimSpace(rest[:closing])) {
	case "high":
		return description, models.PriorityHigh, nil
	case "medium":
		return description, models.PriorityMedium, nil
	case "low":
		return description, models.PriorityLow, nil
	default:
		return description, "", nil
	}
}

func extractDueDate(text string, now time.Time) (string, *time.Time, error) {
	before, after, found := strings.Cut(text, "by")
	if !found {
		return strings.TrimSpace(text), nil, nil
	}

	expression := strings.TrimSpace(after)
	if expression == "" {
		return "", nil, ErrUnparsableDueDate
	}

	dueAt, err := parseDueDate(expression, now)
	if err != nil {
		return "", nil, err
	}
	return strings.TrimSpace(before), &dueAt, nil
}

func parseDueDate(expression string, now time.Time) (time.Time, error) {
	// Absolute timestamps first; zone-less values are assumed UTC.
	if parsed, err := dateparse.ParseIn(expression, time.UTC); err == nil {
		return parsed.UTC(), nil
	}

	result, err := fuzzyDateParser.Parse(expression, now.UTC())
	if err != nil || result == nil {
		return time.Time{}, ErrUnparsableDueDate
	}
	return result.Time.UTC(), nil
}
