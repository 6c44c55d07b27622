package booking

import "github.com/google/uuid"

// HasConflict reports whether any active booking for resourceID overlaps the
// candidate interval. Bookings for other resources and inactive bookings are
// ignored. Pure; used both for read-time availability and as the pre-write
// guard inside the ledger.
func HasConflict(resourceID uuid.UUID, candidate Interval, bookings []*Booking) bool {
	for _, b := range bookings {
		if b.ResourceID() != resourceID {
			continue
		}
		if !b.IsActive() {
			continue
		}
		if b.Interval().Overlaps(candidate) {
			return true
		}
	}
	return false
}

// HeldBySubject reports whether the same subject already holds an active
// booking for the same service overlapping the candidate. Distinguishes
// "reserved by someone else" from "already yours" and backs duplicate-request
// detection in the ledger.
func HeldBySubject(subjectID, serviceID uuid.UUID, candidate Interval, bookings []*Booking) bool {
	for _, b := range bookings {
		if b.SubjectID() != subjectID || b.ServiceID() != serviceID {
			continue
		}
		if !b.IsActive() {
			continue
		}
		if b.Interval().Overlaps(candidate) {
			return true
		}
	}
	return false
}
