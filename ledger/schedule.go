package ledger

import (
	"strconv"
	"strings"
	"time"

	"github.com/dcabrera/music_academy/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// parseClock turns "HH:MM" into minutes since midnight.
func parseClock(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, &ValidationError{Msg: "time must be in HH:MM format: " + s}
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, &ValidationError{Msg: "time must be in HH:MM format: " + s}
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, &ValidationError{Msg: "time must be in HH:MM format: " + s}
	}
	return h*60 + m, nil
}

// intervalsOverlap uses half-open semantics: a slot ending exactly
// when another starts does not conflict.
func intervalsOverlap(start1, end1, start2, end2 int) bool {
	return start1 < end2 && end1 > start2
}

func sharedDay(a, b []string) (string, bool) {
	for _, da := range a {
		for _, db := range b {
			if strings.EqualFold(da, db) {
				return da, true
			}
		}
	}
	return "", false
}

// ValidateScheduleTimes checks the candidate's own interval before any
// conflict lookup.
func ValidateScheduleTimes(startTime, endTime string) error {
	start, err := parseClock(startTime)
	if err != nil {
		return err
	}
	end, err := parseClock(endTime)
	if err != nil {
		return err
	}
	if start >= end {
		return &ValidationError{Msg: "start time must be before end time"}
	}
	return nil
}

// ValidateNoOverlap rejects a candidate schedule whose weekly slots
// intersect another schedule of the same professor. Schedules without
// a professor skip the check; only completed schedules are excluded
// from conflict detection, so an inactive schedule still blocks its
// professor's time.
func ValidateNoOverlap(db *gorm.DB, candidate *models.Schedule, excludeID *uuid.UUID) error {
	if candidate.ProfessorID == nil {
		return nil
	}
	if err := ValidateScheduleTimes(candidate.StartTime, candidate.EndTime); err != nil {
		return err
	}
	candStart, _ := parseClock(candidate.StartTime)
	candEnd, _ := parseClock(candidate.EndTime)

	query := db.Where("professor_id = ? AND status <> ?", *candidate.ProfessorID, models.ScheduleCompleted)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var others []models.Schedule
	if err := query.Find(&others).Error; err != nil {
		return err
	}

	for _, other := range others {
		day, ok := sharedDay(candidate.DaysOfWeek, other.DaysOfWeek)
		if !ok {
			continue
		}
		otherStart, err := parseClock(other.StartTime)
		if err != nil {
			continue
		}
		otherEnd, err := parseClock(other.EndTime)
		if err != nil {
			continue
		}
		if intervalsOverlap(candStart, candEnd, otherStart, otherEnd) {
			return &ScheduleConflictError{
				ProfessorID: *candidate.ProfessorID,
				ScheduleID:  other.ID,
				Day:         day,
				StartTime:   other.StartTime,
				EndTime:     other.EndTime,
			}
		}
	}
	return nil
}

func countEnrolled(db *gorm.DB, scheduleID uuid.UUID) (int64, error) {
	var count int64
	err := db.Model(&models.ScheduleEnrollment{}).
		Where("schedule_id = ? AND status = ?", scheduleID, models.ScheduleEnrolled).
		Count(&count).Error
	return count, err
}

func HasAvailableSlots(db *gorm.DB, schedule *models.Schedule) (bool, error) {
	count, err := countEnrolled(db, schedule.ID)
	if err != nil {
		return false, err
	}
	return count < int64(schedule.MaxStudents), nil
}

// seatAvailable is the capacity decision for one enrollment attempt:
// the schedule must be active and have a free seat. Dropped rows are
// excluded from the enrolled count upstream, so a freed seat is
// immediately available again.
func seatAvailable(scheduleID uuid.UUID, status string, enrolled int64, maxStudents int) error {
	if status != models.ScheduleActive {
		return &InvalidStateError{Op: "enroll student", Status: status}
	}
	if enrolled >= int64(maxStudents) {
		return &CapacityError{ScheduleID: scheduleID, MaxStudents: maxStudents}
	}
	return nil
}

// EnrollStudent seats a student in a schedule. The capacity check and
// the insert run under a row lock on the schedule, so two concurrent
// enrollments cannot both take the last seat.
func EnrollStudent(db *gorm.DB, scheduleID, studentID uuid.UUID) (*models.ScheduleEnrollment, error) {
	var enrollment models.ScheduleEnrollment
	err := db.Transaction(func(tx *gorm.DB) error {
		var schedule models.Schedule
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&schedule, "id = ?", scheduleID).Error; err != nil {
			return err
		}

		count, err := countEnrolled(tx, scheduleID)
		if err != nil {
			return err
		}
		if err := seatAvailable(schedule.ID, schedule.Status, count, schedule.MaxStudents); err != nil {
			return err
		}

		var existing int64
		if err := tx.Model(&models.ScheduleEnrollment{}).
			Where("schedule_id = ? AND student_id = ? AND status = ?", scheduleID, studentID, models.ScheduleEnrolled).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return &ValidationError{Msg: "student is already enrolled in this schedule"}
		}

		enrollment = models.ScheduleEnrollment{
			ScheduleID: scheduleID,
			StudentID:  studentID,
			Status:     models.ScheduleEnrolled,
		}
		return tx.Create(&enrollment).Error
	})
	if err != nil {
		return nil, txError("enroll student", err)
	}
	return &enrollment, nil
}

// DropEnrollment frees the seat but keeps the row.
func DropEnrollment(db *gorm.DB, enrollmentID uuid.UUID) (*models.ScheduleEnrollment, error) {
	var enrollment models.ScheduleEnrollment
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&enrollment, "id = ?", enrollmentID).Error; err != nil {
			return err
		}
		if enrollment.Status == models.ScheduleDropped {
			return &InvalidStateError{Op: "drop enrollment", Status: enrollment.Status}
		}
		now := time.Now()
		enrollment.Status = models.ScheduleDropped
		enrollment.DroppedAt = &now
		return tx.Save(&enrollment).Error
	})
	if err != nil {
		return nil, txError("drop enrollment", err)
	}
	return &enrollment, nil
}
