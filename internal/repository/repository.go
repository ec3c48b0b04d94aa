// Package repository implements activity storage for the activities API:
// an in-memory store for local runs and a PostgreSQL store built on pgx.
package repository

import (
	"context"
	"errors"

	"github.com/Shivanand-hulikatti/activity-board/internal/model"
)

// ErrNotFound is returned when the activity does not exist.
var ErrNotFound = errors.New("activity not found")

// ErrAlreadySignedUp is returned when the email is already enrolled.
var ErrAlreadySignedUp = errors.New("student already signed up for this activity")

// ErrNotSignedUp is returned when removing an email that is not enrolled.
var ErrNotSignedUp = errors.New("student not signed up for this activity")

// ErrActivityFull is returned when no spots remain.
var ErrActivityFull = errors.New("activity is full")

// ActivityRepository is implemented by every store.
type ActivityRepository interface {
	// List returns a snapshot of the whole catalog.
	List(ctx context.Context) (model.Catalog, error)
	// AddParticipant appends email to the activity's participants.
	AddParticipant(ctx context.Context, activity, email string) error
	// RemoveParticipant removes email from the activity's participants.
	RemoveParticipant(ctx context.Context, activity, email string) error
}

// DefaultActivities is the catalog new stores are seeded with.
func DefaultActivities() model.Catalog {
	return model.Catalog{
		"Soccer Club": {
			Description:     "Join our competitive soccer team and participate in friendly matches",
			Schedule:        "Mondays and Wednesdays, 4:00 PM - 5:30 PM",
			MaxParticipants: 22,
			Participants:    []string{"alex@mergington.edu"},
		},
		"Tennis Team": {
			Description:     "Develop tennis skills and compete in intramural tournaments",
			Schedule:        "Tuesdays and Thursdays, 3:30 PM - 5:00 PM",
			MaxParticipants: 16,
			Participants:    []string{"james@mergington.edu"},
		},
		"Art Club": {
			Description:     "Explore various art mediums including painting, drawing, and sculpture",
			Schedule:        "Wednesdays, 3:30 PM - 5:00 PM",
			MaxParticipants: 15,
			Participants:    []string{"isabella@mergington.edu"},
		},
		"Drama Club": {
			Description:     "Perform in theatrical productions and develop acting skills",
			Schedule:        "Mondays, Wednesdays, Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 20,
			Participants:    []string{"lucas@mergington.edu", "grace@mergington.edu"},
		},
		"Robotics Club": {
			Description:     "Build and program robots for competitions and challenges",
			Schedule:        "Saturdays, 10:00 AM - 12:00 PM",
			MaxParticipants: 18,
			Participants:    []string{"ryan@mergington.edu"},
		},
		"Math Team": {
			Description:     "Solve challenging math problems and compete in regional competitions",
			Schedule:        "Thursdays, 4:00 PM - 5:30 PM",
			MaxParticipants: 12,
			Participants:    []string{"zoe@mergington.edu"},
		},
		"Chess Club": {
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 12,
			Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
		},
		"Programming Class": {
			Description:     "Learn programming fundamentals and build software projects",
			Schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"emma@mergington.edu", "sophia@mergington.edu"},
		},
		"Gym Class": {
			Description:     "Physical education and sports activities",
			Schedule:        "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM",
			MaxParticipants: 30,
			Participants:    []string{"john@mergington.edu", "olivia@mergington.edu"},
		},
	}
}
