package domain

import (
	"strconv"

	"github.com/coursekit/go-course-store/cache"
)

// Cache configurations for the reference kinds. User-authored aggregates
// (courses, events, participants, registrations, instructors) are not cached;
// they are written too often for a freshness layer to pay off.

func refCacheConfig[T any](kind string, id func(T) int64) cache.ReferenceConfig[T] {
	return cache.ReferenceConfig[T]{
		Kind:  kind,
		Key:   func(v T) string { return strconv.FormatInt(id(v), 10) },
		Newer: func(a, b T) bool { return id(a) > id(b) },
	}
}

func CourseEventTypeCacheConfig() cache.ReferenceConfig[CourseEventType] {
	return refCacheConfig(KindCourseEventType, func(v CourseEventType) int64 { return v.ID })
}

func CourseRegistrationStatusCacheConfig() cache.ReferenceConfig[CourseRegistrationStatus] {
	return refCacheConfig(KindCourseRegistrationStatus, func(v CourseRegistrationStatus) int64 { return v.ID })
}

func PaymentMethodCacheConfig() cache.ReferenceConfig[PaymentMethod] {
	return refCacheConfig(KindPaymentMethod, func(v PaymentMethod) int64 { return v.ID })
}

func VenueTypeCacheConfig() cache.ReferenceConfig[VenueType] {
	return refCacheConfig(KindVenueType, func(v VenueType) int64 { return v.ID })
}

func ParticipantContactTypeCacheConfig() cache.ReferenceConfig[ParticipantContactType] {
	return refCacheConfig(KindParticipantContactType, func(v ParticipantContactType) int64 { return v.ID })
}

func InstructorRoleCacheConfig() cache.ReferenceConfig[InstructorRole] {
	return refCacheConfig(KindInstructorRole, func(v InstructorRole) int64 { return v.ID })
}

func LocationCacheConfig() cache.ReferenceConfig[Location] {
	return refCacheConfig(KindLocation, func(v Location) int64 { return v.ID })
}

func InPlaceLocationCacheConfig() cache.ReferenceConfig[InPlaceLocation] {
	return refCacheConfig(KindInPlaceLocation, func(v InPlaceLocation) int64 { return v.ID })
}
