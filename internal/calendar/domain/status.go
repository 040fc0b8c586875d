package calendar

import "strings"

// Status is the closed vocabulary calendar events are normalized into.
type Status string

const (
	StatusBooked       Status = "booked"
	StatusHold         Status = "hold"
	StatusAvailable    Status = "available"
	StatusTentative    Status = "tentative"
	StatusCancelled    Status = "cancelled"
	StatusNotAvailable Status = "not_available"
)

var statusSynonyms = map[string]Status{
	"booked":        StatusBooked,
	"confirmed":     StatusBooked,
	"hold":          StatusHold,
	"pending":       StatusHold,
	"available":     StatusAvailable,
	"open":          StatusAvailable,
	"tentative":     StatusTentative,
	"maybe":         StatusTentative,
	"cancelled":     StatusCancelled,
	"canceled":      StatusCancelled,
	"not available": StatusNotAvailable,
	"unavailable":   StatusNotAvailable,
	"ooo":           StatusNotAvailable,
	"off":           StatusNotAvailable,
	"personal day":  StatusNotAvailable,
	"out of office": StatusNotAvailable,
}

// NormalizeStatus maps free-form status text onto the closed vocabulary.
// Unrecognized input, including empty, defaults to available.
func NormalizeStatus(raw string) Status {
	key := strings.ToLower(strings.TrimSpace(raw))
	if status, ok := statusSynonyms[key]; ok {
		return status
	}
	return StatusAvailable
}

// ValidStatus reports whether value is one of the closed vocabulary.
func ValidStatus(value Status) bool {
	switch value {
	case StatusBooked, StatusHold, StatusAvailable, StatusTentative, StatusCancelled, StatusNotAvailable:
		return true
	default:
		return false
	}
}
