// Package domain defines the course-management aggregates and the per-kind
// wiring (store handlers, cache configuration, delete-guard rules) the rest
// of the module composes. Field-level invariants such as "title not empty"
// are validated by the application layer before anything in this module runs.
package domain

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/coursekit/go-course-store/store"
)

// Aggregate kind names, used in errors, cache key namespaces and log fields.
const (
	KindCourse             = "course"
	KindCourseEvent        = "course_event"
	KindInstructor         = "instructor"
	KindParticipant        = "participant"
	KindCourseRegistration = "course_registration"

	KindCourseEventType          = "course_event_type"
	KindCourseRegistrationStatus = "course_registration_status"
	KindPaymentMethod            = "payment_method"
	KindVenueType                = "venue_type"
	KindParticipantContactType   = "participant_contact_type"
	KindInstructorRole           = "instructor_role"
	KindLocation                 = "location"
	KindInPlaceLocation          = "in_place_location"
)

// Course is a user-authored aggregate; ids are random 128-bit identifiers.
type Course struct {
	bun.BaseModel `bun:"table:courses,alias:c"`

	ID           string             `bun:"id,pk" json:"id"`
	Title        string             `bun:"title,notnull" json:"title"`
	Description  string             `bun:"description" json:"description"`
	InstructorID string             `bun:"instructor_id,nullzero" json:"instructor_id,omitempty"`
	VersionToken store.VersionToken `bun:"version_token,notnull" json:"version_token"`
}

// CourseEvent is a scheduled occurrence of a Course at a location.
type CourseEvent struct {
	bun.BaseModel `bun:"table:course_events,alias:ce"`

	ID                string             `bun:"id,pk" json:"id"`
	CourseID          string             `bun:"course_id,notnull" json:"course_id"`
	EventTypeID       int64              `bun:"event_type_id,notnull" json:"event_type_id"`
	InstructorID      string             `bun:"instructor_id,nullzero" json:"instructor_id,omitempty"`
	LocationID        int64              `bun:"location_id,nullzero" json:"location_id,omitempty"`
	InPlaceLocationID int64              `bun:"in_place_location_id,nullzero" json:"in_place_location_id,omitempty"`
	StartsAt          time.Time          `bun:"starts_at,notnull" json:"starts_at"`
	EndsAt            time.Time          `bun:"ends_at,notnull" json:"ends_at"`
	VersionToken      store.VersionToken `bun:"version_token,notnull" json:"version_token"`
}

// Instructor teaches course events.
type Instructor struct {
	bun.BaseModel `bun:"table:instructors,alias:i"`

	ID           string             `bun:"id,pk" json:"id"`
	Name         string             `bun:"name,notnull" json:"name"`
	Email        string             `bun:"email,nullzero" json:"email,omitempty"`
	RoleID       int64              `bun:"role_id,nullzero" json:"role_id,omitempty"`
	VersionToken store.VersionToken `bun:"version_token,notnull" json:"version_token"`
}

// Participant attends course events through registrations.
type Participant struct {
	bun.BaseModel `bun:"table:participants,alias:p"`

	ID            string             `bun:"id,pk" json:"id"`
	Name          string             `bun:"name,notnull" json:"name"`
	Email         string             `bun:"email,nullzero" json:"email,omitempty"`
	ContactTypeID int64              `bun:"contact_type_id,nullzero" json:"contact_type_id,omitempty"`
	VersionToken  store.VersionToken `bun:"version_token,notnull" json:"version_token"`
}

// CourseRegistration ties a participant to a course event.
type CourseRegistration struct {
	bun.BaseModel `bun:"table:course_registrations,alias:cr"`

	ID              string             `bun:"id,pk" json:"id"`
	CourseEventID   string             `bun:"course_event_id,notnull" json:"course_event_id"`
	ParticipantID   string             `bun:"participant_id,notnull" json:"participant_id"`
	StatusID        int64              `bun:"status_id,nullzero" json:"status_id,omitempty"`
	PaymentMethodID int64              `bun:"payment_method_id,nullzero" json:"payment_method_id,omitempty"`
	RegisteredAt    time.Time          `bun:"registered_at,notnull" json:"registered_at"`
	VersionToken    store.VersionToken `bun:"version_token,notnull" json:"version_token"`
}
