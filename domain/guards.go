package domain

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/coursekit/go-course-store/guard"
	"github.com/coursekit/go-course-store/internal/storeinfra"
)

// Delete guards per aggregate kind. Each rule pairs the dependent kind with
// an existence query over its foreign-key column; the RESTRICT constraints
// declared in CreateSchema are the authoritative backstop for the window
// between the check and the delete.

func CourseGuard(db bun.IDB) (*guard.Guard, error) {
	return guard.New(KindCourse,
		guard.Rule{DependentKind: KindCourseEvent, InUse: storeinfra.ExistsWhere(db, "course_events", "course_id")},
	)
}

func CourseEventGuard(db bun.IDB) (*guard.Guard, error) {
	return guard.New(KindCourseEvent,
		guard.Rule{DependentKind: KindCourseRegistration, InUse: storeinfra.ExistsWhere(db, "course_registrations", "course_event_id")},
	)
}

func InstructorGuard(db bun.IDB) (*guard.Guard, error) {
	return guard.New(KindInstructor,
		guard.Rule{DependentKind: KindCourse, InUse: storeinfra.ExistsWhere(db, "courses", "instructor_id")},
		guard.Rule{DependentKind: KindCourseEvent, InUse: storeinfra.ExistsWhere(db, "course_events", "instructor_id")},
	)
}

func ParticipantGuard(db bun.IDB) (*guard.Guard, error) {
	return guard.New(KindParticipant,
		guard.Rule{DependentKind: KindCourseRegistration, InUse: storeinfra.ExistsWhere(db, "course_registrations", "participant_id")},
	)
}

func CourseEventTypeGuard(db bun.IDB) (*guard.Guard, error) {
	return guard.New(KindCourseEventType,
		guard.Rule{DependentKind: KindCourseEvent, InUse: storeinfra.ExistsWhere(db, "course_events", "event_type_id")},
	)
}

func CourseRegistrationStatusGuard(db bun.IDB) (*guard.Guard, error) {
	return guard.New(KindCourseRegistrationStatus,
		guard.Rule{DependentKind: KindCourseRegistration, InUse: storeinfra.ExistsWhere(db, "course_registrations", "status_id")},
	)
}

func PaymentMethodGuard(db bun.IDB) (*guard.Guard, error) {
	return guard.New(KindPaymentMethod,
		guard.Rule{DependentKind: KindCourseRegistration, InUse: storeinfra.ExistsWhere(db, "course_registrations", "payment_method_id")},
	)
}

func VenueTypeGuard(db bun.IDB) (*guard.Guard, error) {
	return guard.New(KindVenueType,
		guard.Rule{DependentKind: KindLocation, InUse: storeinfra.ExistsWhere(db, "locations", "venue_type_id")},
	)
}

func ParticipantContactTypeGuard(db bun.IDB) (*guard.Guard, error) {
	return guard.New(KindParticipantContactType,
		guard.Rule{DependentKind: KindParticipant, InUse: storeinfra.ExistsWhere(db, "participants", "contact_type_id")},
	)
}

func InstructorRoleGuard(db bun.IDB) (*guard.Guard, error) {
	return guard.New(KindInstructorRole,
		guard.Rule{DependentKind: KindInstructor, InUse: storeinfra.ExistsWhere(db, "instructors", "role_id")},
	)
}

func LocationGuard(db bun.IDB) (*guard.Guard, error) {
	return guard.New(KindLocation,
		guard.Rule{DependentKind: KindCourseEvent, InUse: storeinfra.ExistsWhere(db, "course_events", "location_id")},
	)
}

func InPlaceLocationGuard(db bun.IDB) (*guard.Guard, error) {
	return guard.New(KindInPlaceLocation,
		guard.Rule{DependentKind: KindCourseEvent, InUse: storeinfra.ExistsWhere(db, "course_events", "in_place_location_id")},
	)
}

// CreateSchema creates all aggregate tables with their RESTRICT foreign keys,
// reference kinds first so dependents can point at them. Intended for tests
// and examples; production schema lives in migrations outside this module.
func CreateSchema(ctx context.Context, db bun.IDB) error {
	for _, step := range []struct {
		model any
		fks   []string
	}{
		{model: (*CourseEventType)(nil)},
		{model: (*CourseRegistrationStatus)(nil)},
		{model: (*PaymentMethod)(nil)},
		{model: (*VenueType)(nil)},
		{model: (*ParticipantContactType)(nil)},
		{model: (*InstructorRole)(nil)},
		{model: (*Location)(nil), fks: []string{
			`("venue_type_id") REFERENCES "venue_types" ("id") ON DELETE RESTRICT`,
		}},
		{model: (*InPlaceLocation)(nil)},
		{model: (*Instructor)(nil), fks: []string{
			`("role_id") REFERENCES "instructor_roles" ("id") ON DELETE RESTRICT`,
		}},
		{model: (*Course)(nil), fks: []string{
			`("instructor_id") REFERENCES "instructors" ("id") ON DELETE RESTRICT`,
		}},
		{model: (*Participant)(nil), fks: []string{
			`("contact_type_id") REFERENCES "participant_contact_types" ("id") ON DELETE RESTRICT`,
		}},
		{model: (*CourseEvent)(nil), fks: []string{
			`("course_id") REFERENCES "courses" ("id") ON DELETE RESTRICT`,
			`("event_type_id") REFERENCES "course_event_types" ("id") ON DELETE RESTRICT`,
			`("instructor_id") REFERENCES "instructors" ("id") ON DELETE RESTRICT`,
			`("location_id") REFERENCES "locations" ("id") ON DELETE RESTRICT`,
			`("in_place_location_id") REFERENCES "in_place_locations" ("id") ON DELETE RESTRICT`,
		}},
		{model: (*CourseRegistration)(nil), fks: []string{
			`("course_event_id") REFERENCES "course_events" ("id") ON DELETE RESTRICT`,
			`("participant_id") REFERENCES "participants" ("id") ON DELETE RESTRICT`,
			`("status_id") REFERENCES "course_registration_statuses" ("id") ON DELETE RESTRICT`,
			`("payment_method_id") REFERENCES "payment_methods" ("id") ON DELETE RESTRICT`,
		}},
	} {
		if err := storeinfra.CreateTable(ctx, db, step.model, step.fks...); err != nil {
			return err
		}
	}
	return nil
}
