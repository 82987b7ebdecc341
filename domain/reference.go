package domain

import (
	"github.com/uptrace/bun"

	"github.com/coursekit/go-course-store/store"
)

// Reference aggregates: small, rarely written, frequently read lookup tables.
// Ids are store-assigned serials, names are unique, and every kind carries a
// version token like the user-authored aggregates do.

type CourseEventType struct {
	bun.BaseModel `bun:"table:course_event_types,alias:cet"`

	ID           int64              `bun:"id,pk,autoincrement" json:"id"`
	Name         string             `bun:"name,notnull,unique" json:"name"`
	VersionToken store.VersionToken `bun:"version_token,notnull" json:"version_token"`
}

type CourseRegistrationStatus struct {
	bun.BaseModel `bun:"table:course_registration_statuses,alias:crs"`

	ID           int64              `bun:"id,pk,autoincrement" json:"id"`
	Name         string             `bun:"name,notnull,unique" json:"name"`
	VersionToken store.VersionToken `bun:"version_token,notnull" json:"version_token"`
}

type PaymentMethod struct {
	bun.BaseModel `bun:"table:payment_methods,alias:pm"`

	ID           int64              `bun:"id,pk,autoincrement" json:"id"`
	Name         string             `bun:"name,notnull,unique" json:"name"`
	VersionToken store.VersionToken `bun:"version_token,notnull" json:"version_token"`
}

type VenueType struct {
	bun.BaseModel `bun:"table:venue_types,alias:vt"`

	ID           int64              `bun:"id,pk,autoincrement" json:"id"`
	Name         string             `bun:"name,notnull,unique" json:"name"`
	VersionToken store.VersionToken `bun:"version_token,notnull" json:"version_token"`
}

type ParticipantContactType struct {
	bun.BaseModel `bun:"table:participant_contact_types,alias:pct"`

	ID           int64              `bun:"id,pk,autoincrement" json:"id"`
	Name         string             `bun:"name,notnull,unique" json:"name"`
	VersionToken store.VersionToken `bun:"version_token,notnull" json:"version_token"`
}

type InstructorRole struct {
	bun.BaseModel `bun:"table:instructor_roles,alias:ir"`

	ID           int64              `bun:"id,pk,autoincrement" json:"id"`
	Name         string             `bun:"name,notnull,unique" json:"name"`
	VersionToken store.VersionToken `bun:"version_token,notnull" json:"version_token"`
}

// Location is a bookable venue.
type Location struct {
	bun.BaseModel `bun:"table:locations,alias:l"`

	ID           int64              `bun:"id,pk,autoincrement" json:"id"`
	Name         string             `bun:"name,notnull,unique" json:"name"`
	VenueTypeID  int64              `bun:"venue_type_id,nullzero" json:"venue_type_id,omitempty"`
	Address      string             `bun:"address" json:"address"`
	VersionToken store.VersionToken `bun:"version_token,notnull" json:"version_token"`
}

// InPlaceLocation is an on-premises room used when an event happens in house.
type InPlaceLocation struct {
	bun.BaseModel `bun:"table:in_place_locations,alias:ipl"`

	ID           int64              `bun:"id,pk,autoincrement" json:"id"`
	Name         string             `bun:"name,notnull,unique" json:"name"`
	Room         string             `bun:"room" json:"room"`
	VersionToken store.VersionToken `bun:"version_token,notnull" json:"version_token"`
}
