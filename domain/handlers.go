package domain

import (
	"github.com/google/uuid"

	"github.com/coursekit/go-course-store/store"
)

// Store handlers per aggregate kind. User-authored kinds generate uuid ids;
// reference kinds leave NewID nil so the backing store assigns serials.

func CourseHandlers() store.Handlers[Course, string] {
	return store.Handlers[Course, string]{
		Kind:     KindCourse,
		ID:       func(v Course) string { return v.ID },
		SetID:    func(v *Course, id string) { v.ID = id },
		Token:    func(v Course) store.VersionToken { return v.VersionToken },
		SetToken: func(v *Course, t store.VersionToken) { v.VersionToken = t },
		NewID:    uuid.NewString,
	}
}

func CourseEventHandlers() store.Handlers[CourseEvent, string] {
	return store.Handlers[CourseEvent, string]{
		Kind:     KindCourseEvent,
		ID:       func(v CourseEvent) string { return v.ID },
		SetID:    func(v *CourseEvent, id string) { v.ID = id },
		Token:    func(v CourseEvent) store.VersionToken { return v.VersionToken },
		SetToken: func(v *CourseEvent, t store.VersionToken) { v.VersionToken = t },
		NewID:    uuid.NewString,
	}
}

func InstructorHandlers() store.Handlers[Instructor, string] {
	return store.Handlers[Instructor, string]{
		Kind:     KindInstructor,
		ID:       func(v Instructor) string { return v.ID },
		SetID:    func(v *Instructor, id string) { v.ID = id },
		Token:    func(v Instructor) store.VersionToken { return v.VersionToken },
		SetToken: func(v *Instructor, t store.VersionToken) { v.VersionToken = t },
		NewID:    uuid.NewString,
	}
}

func ParticipantHandlers() store.Handlers[Participant, string] {
	return store.Handlers[Participant, string]{
		Kind:     KindParticipant,
		ID:       func(v Participant) string { return v.ID },
		SetID:    func(v *Participant, id string) { v.ID = id },
		Token:    func(v Participant) store.VersionToken { return v.VersionToken },
		SetToken: func(v *Participant, t store.VersionToken) { v.VersionToken = t },
		NewID:    uuid.NewString,
	}
}

func CourseRegistrationHandlers() store.Handlers[CourseRegistration, string] {
	return store.Handlers[CourseRegistration, string]{
		Kind:     KindCourseRegistration,
		ID:       func(v CourseRegistration) string { return v.ID },
		SetID:    func(v *CourseRegistration, id string) { v.ID = id },
		Token:    func(v CourseRegistration) store.VersionToken { return v.VersionToken },
		SetToken: func(v *CourseRegistration, t store.VersionToken) { v.VersionToken = t },
		NewID:    uuid.NewString,
	}
}

func CourseEventTypeHandlers() store.Handlers[CourseEventType, int64] {
	return store.Handlers[CourseEventType, int64]{
		Kind:     KindCourseEventType,
		ID:       func(v CourseEventType) int64 { return v.ID },
		SetID:    func(v *CourseEventType, id int64) { v.ID = id },
		Token:    func(v CourseEventType) store.VersionToken { return v.VersionToken },
		SetToken: func(v *CourseEventType, t store.VersionToken) { v.VersionToken = t },
	}
}

func CourseRegistrationStatusHandlers() store.Handlers[CourseRegistrationStatus, int64] {
	return store.Handlers[CourseRegistrationStatus, int64]{
		Kind:     KindCourseRegistrationStatus,
		ID:       func(v CourseRegistrationStatus) int64 { return v.ID },
		SetID:    func(v *CourseRegistrationStatus, id int64) { v.ID = id },
		Token:    func(v CourseRegistrationStatus) store.VersionToken { return v.VersionToken },
		SetToken: func(v *CourseRegistrationStatus, t store.VersionToken) { v.VersionToken = t },
	}
}

func PaymentMethodHandlers() store.Handlers[PaymentMethod, int64] {
	return store.Handlers[PaymentMethod, int64]{
		Kind:     KindPaymentMethod,
		ID:       func(v PaymentMethod) int64 { return v.ID },
		SetID:    func(v *PaymentMethod, id int64) { v.ID = id },
		Token:    func(v PaymentMethod) store.VersionToken { return v.VersionToken },
		SetToken: func(v *PaymentMethod, t store.VersionToken) { v.VersionToken = t },
	}
}

func VenueTypeHandlers() store.Handlers[VenueType, int64] {
	return store.Handlers[VenueType, int64]{
		Kind:     KindVenueType,
		ID:       func(v VenueType) int64 { return v.ID },
		SetID:    func(v *VenueType, id int64) { v.ID = id },
		Token:    func(v VenueType) store.VersionToken { return v.VersionToken },
		SetToken: func(v *VenueType, t store.VersionToken) { v.VersionToken = t },
	}
}

func ParticipantContactTypeHandlers() store.Handlers[ParticipantContactType, int64] {
	return store.Handlers[ParticipantContactType, int64]{
		Kind:     KindParticipantContactType,
		ID:       func(v ParticipantContactType) int64 { return v.ID },
		SetID:    func(v *ParticipantContactType, id int64) { v.ID = id },
		Token:    func(v ParticipantContactType) store.VersionToken { return v.VersionToken },
		SetToken: func(v *ParticipantContactType, t store.VersionToken) { v.VersionToken = t },
	}
}

func InstructorRoleHandlers() store.Handlers[InstructorRole, int64] {
	return store.Handlers[InstructorRole, int64]{
		Kind:     KindInstructorRole,
		ID:       func(v InstructorRole) int64 { return v.ID },
		SetID:    func(v *InstructorRole, id int64) { v.ID = id },
		Token:    func(v InstructorRole) store.VersionToken { return v.VersionToken },
		SetToken: func(v *InstructorRole, t store.VersionToken) { v.VersionToken = t },
	}
}

func LocationHandlers() store.Handlers[Location, int64] {
	return store.Handlers[Location, int64]{
		Kind:     KindLocation,
		ID:       func(v Location) int64 { return v.ID },
		SetID:    func(v *Location, id int64) { v.ID = id },
		Token:    func(v Location) store.VersionToken { return v.VersionToken },
		SetToken: func(v *Location, t store.VersionToken) { v.VersionToken = t },
	}
}

func InPlaceLocationHandlers() store.Handlers[InPlaceLocation, int64] {
	return store.Handlers[InPlaceLocation, int64]{
		Kind:     KindInPlaceLocation,
		ID:       func(v InPlaceLocation) int64 { return v.ID },
		SetID:    func(v *InPlaceLocation, id int64) { v.ID = id },
		Token:    func(v InPlaceLocation) store.VersionToken { return v.VersionToken },
		SetToken: func(v *InPlaceLocation, t store.VersionToken) { v.VersionToken = t },
	}
}
