package attendance

import (
	"time"

	"github.com/workforce-hub/attendance-backend/internal/pkg/validator"
)

// ========================================
// PUNCH DTOs
// ========================================

type PunchRequest struct {
	UserID    string   `json:"-"`
	Latitude  *float64 `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude *float64 `json:"longitude" validate:"required,min=-180,max=180"`
}

func (r *PunchRequest) Validate() error {
	if validator.IsEmpty(r.UserID) {
		return validator.ValidationErrors{{Field: "user_id", Message: "user_id is required"}}
	}
	return validator.Struct(r)
}

type PunchInResponse struct {
	ID              string      `json:"id"`
	UserID          string      `json:"user_id"`
	PunchInTime     time.Time   `json:"punch_in_time"`
	PunchDate       string      `json:"punch_date"`
	PunchInLocation string      `json:"punch_in_location"`
	Distance        float64     `json:"distance"`
	WorkingMode     WorkingMode `json:"working_mode"`
	Status          Status      `json:"status"`
	ReviewedBy      *string     `json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time  `json:"reviewed_at,omitempty"`
	UserName        string      `json:"user_name,omitempty"`
	Email           string      `json:"email,omitempty"`
	ProfilePhotoURL *string     `json:"profile_photo_url,omitempty"`
}

type PunchOutResponse struct {
	ID               string      `json:"id"`
	UserID           string      `json:"user_id"`
	PunchOutTime     time.Time   `json:"punch_out_time"`
	PunchDate        string      `json:"punch_date"`
	PunchOutLocation string      `json:"punch_out_location"`
	Distance         float64     `json:"distance"`
	WorkingMode      WorkingMode `json:"working_mode"`
	Status           Status      `json:"status"`
	ReviewedBy       *string     `json:"reviewed_by,omitempty"`
	ReviewedAt       *time.Time  `json:"reviewed_at,omitempty"`
	UserName         string      `json:"user_name,omitempty"`
	Email            string      `json:"email,omitempty"`
	ProfilePhotoURL  *string     `json:"profile_photo_url,omitempty"`
}

func NewPunchInResponse(r PunchInRecord) PunchInResponse {
	return PunchInResponse{
		ID:              r.ID,
		UserID:          r.UserID,
		PunchInTime:     r.PunchInTime,
		PunchDate:       r.PunchDate,
		PunchInLocation: r.PunchInLocation,
		Distance:        r.Distance,
		WorkingMode:     r.WorkingMode,
		Status:          r.Status,
		ReviewedBy:      r.ReviewedBy,
		ReviewedAt:      r.ReviewedAt,
		UserName:        r.UserName,
		Email:           r.Email,
		ProfilePhotoURL: r.ProfilePhotoURL,
	}
}

func NewPunchOutResponse(r PunchOutRecord) PunchOutResponse {
	return PunchOutResponse{
		ID:               r.ID,
		UserID:           r.UserID,
		PunchOutTime:     r.PunchOutTime,
		PunchDate:        r.PunchDate,
		PunchOutLocation: r.PunchOutLocation,
		Distance:         r.Distance,
		WorkingMode:      r.WorkingMode,
		Status:           r.Status,
		ReviewedBy:       r.ReviewedBy,
		ReviewedAt:       r.ReviewedAt,
		UserName:         r.UserName,
		Email:            r.Email,
		ProfilePhotoURL:  r.ProfilePhotoURL,
	}
}

// PunchInResult carries the created record and the outcome shown to the user.
type PunchInResult struct {
	Message string          `json:"message"`
	Record  PunchInResponse `json:"record"`
}

type PunchOutResult struct {
	Message string           `json:"message"`
	Record  PunchOutResponse `json:"record"`
}

// ========================================
// TODAY STATUS DTOs
// ========================================

type PunchInDetails struct {
	PunchInTime     time.Time   `json:"punch_in_time"`
	PunchInLocation string      `json:"punch_in_location"`
	Distance        float64     `json:"distance"`
	WorkingMode     WorkingMode `json:"working_mode"`
	Status          Status      `json:"status"`
}

type PunchInStatusResponse struct {
	IsPunchedIn bool            `json:"is_punched_in"`
	Message     string          `json:"message"`
	Details     *PunchInDetails `json:"punch_in_details,omitempty"`
}

type PunchOutDetails struct {
	PunchOutTime       time.Time `json:"punch_out_time"`
	PunchOutLocation   string    `json:"punch_out_location"`
	Distance           float64   `json:"distance"`
	Status             Status    `json:"status"`
	TimeElapsedMinutes int64     `json:"time_elapsed_minutes"`
}

type PunchOutStatusResponse struct {
	IsPunchedOut bool             `json:"is_punched_out"`
	Message      string           `json:"message"`
	Details      *PunchOutDetails `json:"punch_out_details,omitempty"`
}

// ========================================
// REPORT DTOs
// ========================================

// DayStatus is derived per user and day from the records that exist.
type DayStatus string

const (
	DayStatusAbsent    DayStatus = "absent"
	DayStatusPresent   DayStatus = "present"
	DayStatusCompleted DayStatus = "completed"
)

type DailyAttendanceRequest struct {
	// Date defaults to today when empty.
	Date string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

func (r *DailyAttendanceRequest) Validate() error {
	return validator.Struct(r)
}

type DailyAttendanceRecord struct {
	UserID           string       `json:"user_id"`
	UserName         string       `json:"user_name"`
	Email            string       `json:"email"`
	ProfilePhotoURL  *string      `json:"profile_photo_url"`
	PunchInTime      *time.Time   `json:"punch_in_time"`
	PunchInLocation  *string      `json:"punch_in_location"`
	Distance         *float64     `json:"distance"`
	PunchOutTime     *time.Time   `json:"punch_out_time"`
	PunchOutLocation *string      `json:"punch_out_location"`
	WorkingMode      *WorkingMode `json:"working_mode"`
	Status           DayStatus    `json:"status"`
	WorkingHours     *float64     `json:"working_hours"`
}

type DailySummary struct {
	TotalRecords        int     `json:"total_records"`
	ActiveEmployees     int     `json:"active_employees"`
	CompletedShifts     int     `json:"completed_shifts"`
	AbsentEmployees     int     `json:"absent_employees"`
	AverageWorkingHours float64 `json:"average_working_hours"`
}

type DailyAttendanceResponse struct {
	Date    string                  `json:"date"`
	Records []DailyAttendanceRecord `json:"records"`
	Summary DailySummary            `json:"summary"`
}

type UserReportRequest struct {
	UserID    string `json:"user_id" validate:"required,uuid"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

func (r *UserReportRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}
	if r.EndDate < r.StartDate {
		return ErrInvalidDateRange
	}
	return nil
}

type UserDetails struct {
	UserName        string  `json:"user_name"`
	ProfilePhotoURL *string `json:"profile_photo_url"`
}

type Period struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type UserReportRecord struct {
	Date         string     `json:"date"`
	PunchInTime  time.Time  `json:"punch_in_time"`
	PunchOutTime *time.Time `json:"punch_out_time"`
	WorkingHours *float64   `json:"working_hours"`
	Status       DayStatus  `json:"status"`
}

type UserReportSummary struct {
	TotalDaysPresent     int     `json:"total_days_present"`
	TotalWorkingDays     int     `json:"total_working_days"`
	AttendancePercentage string  `json:"attendance_percentage"`
	CompletedShifts      int     `json:"completed_shifts"`
	AverageWorkingHours  float64 `json:"average_working_hours"`
}

type UserReportResponse struct {
	UserID      string             `json:"user_id"`
	UserDetails UserDetails        `json:"user_details"`
	Period      Period             `json:"period"`
	Summary     UserReportSummary  `json:"summary"`
	Records     []UserReportRecord `json:"records"`
}

// ========================================
// APPROVAL DTOs
// ========================================

type PendingRequestsResponse struct {
	PendingPunchIns  []PunchInResponse  `json:"pending_punch_ins"`
	PendingPunchOuts []PunchOutResponse `json:"pending_punch_outs"`
}

type ReviewRequest struct {
	RequestID  string `json:"request_id" validate:"required,uuid"`
	ReviewerID string `json:"-"`
}

func (r *ReviewRequest) Validate() error {
	return validator.Struct(r)
}

// ReviewResponse holds whichever record the request id matched.
type ReviewResponse struct {
	Kind     Kind              `json:"kind"`
	PunchIn  *PunchInResponse  `json:"punch_in,omitempty"`
	PunchOut *PunchOutResponse `json:"punch_out,omitempty"`
}

// PendingCounts is the size of the review queue.
type PendingCounts struct {
	PunchIns  int64 `json:"punch_ins"`
	PunchOuts int64 `json:"punch_outs"`
}

func (c PendingCounts) Total() int64 {
	return c.PunchIns + c.PunchOuts
}
