// Package services implements the status and audit engine behind the admin
// API: per-kind transition validation, append-only status history, bulk
// updates and status tallies.
//
// Quote status graph:
//
//	pending ──► processing ──► quoted ──► converted
//	    │            │            │
//	    └────────────┴────────────┴──► closed
//
// Contact status graph:
//
//	pending ──► responded ──► closed
//
// converted and closed are terminal. Re-entering the current status is
// allowed on non-terminal states and recorded as an audited no-op.
package services

import "fmt"

// EntityKind discriminates the two audited entity types.
type EntityKind string

const (
	KindQuote   EntityKind = "quote"
	KindContact EntityKind = "contact"
)

// Status values mirror the status column of status_records.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusQuoted     Status = "quoted"
	StatusConverted  Status = "converted"
	StatusResponded  Status = "responded"
	StatusClosed     Status = "closed"
)

// quoteTransitions lists every allowed (from → to) pair for quotes.
var quoteTransitions = map[Status][]Status{
	StatusPending:    {StatusPending, StatusProcessing, StatusClosed},
	StatusProcessing: {StatusProcessing, StatusQuoted, StatusClosed},
	StatusQuoted:     {StatusQuoted, StatusConverted, StatusClosed},
	// converted and closed are terminal, no outgoing transitions
}

// contactTransitions lists every allowed (from → to) pair for contacts.
// closed is only reachable through responded.
var contactTransitions = map[Status][]Status{
	StatusPending:   {StatusPending, StatusResponded},
	StatusResponded: {StatusResponded, StatusClosed},
	// closed is terminal
}

var kindStatuses = map[EntityKind][]Status{
	KindQuote:   {StatusPending, StatusProcessing, StatusQuoted, StatusConverted, StatusClosed},
	KindContact: {StatusPending, StatusResponded, StatusClosed},
}

// Statuses returns every status a kind can be in, initial state first.
func Statuses(kind EntityKind) []Status {
	return kindStatuses[kind]
}

// ParseStatus converts a raw string to a Status valid for the given kind,
// returning a ValidationError for unknown values.
func ParseStatus(kind EntityKind, raw string) (Status, error) {
	st := Status(raw)
	for _, valid := range kindStatuses[kind] {
		if st == valid {
			return st, nil
		}
	}
	return "", &ValidationError{Reason: fmt.Sprintf("unknown %s status %q", kind, raw)}
}

// IsValidTransition returns true when moving from → to is permitted by the
// kind's transition graph.
func IsValidTransition(kind EntityKind, from, to Status) bool {
	var table map[Status][]Status
	switch kind {
	case KindQuote:
		table = quoteTransitions
	case KindContact:
		table = contactTransitions
	default:
		return false
	}

	allowed, ok := table[from]
	if !ok {
		return false // terminal state, no outgoing transitions
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}
