// Package model defines the core domain types shared by the activities API
// and the activity board.
package model

import "sort"

// ActivityDetails describes one activity as served by GET /activities.
type ActivityDetails struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// SpotsLeft returns the remaining capacity. It is always derived from the
// participant list and may be negative if the server over-enrolled.
func (a ActivityDetails) SpotsLeft() int {
	return a.MaxParticipants - len(a.Participants)
}

// IsFull returns true when no spots remain.
func (a ActivityDetails) IsFull() bool {
	return a.SpotsLeft() <= 0
}

// HasParticipant reports whether email is enrolled.
func (a ActivityDetails) HasParticipant(email string) bool {
	for _, p := range a.Participants {
		if p == email {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no memory with a. The participant list
// is never nil, so it always encodes as a JSON array.
func (a ActivityDetails) Clone() ActivityDetails {
	out := a
	out.Participants = make([]string, len(a.Participants))
	copy(out.Participants, a.Participants)
	return out
}

// Catalog maps an activity name to its details.
type Catalog map[string]ActivityDetails

// Names returns the activity names in ascending order.
func (c Catalog) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a deep copy of the catalog.
func (c Catalog) Clone() Catalog {
	out := make(Catalog, len(c))
	for name, details := range c {
		out[name] = details.Clone()
	}
	return out
}

// MessageResponse is the success envelope of the write endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the JSON error envelope. Detail is optional on the wire.
type ErrorResponse struct {
	Detail string `json:"detail,omitempty"`
}
