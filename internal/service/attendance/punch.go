package attendance

import (
	"context"
	"fmt"
	"math"

	"github.com/workforce-hub/attendance-backend/internal/domain/attendance"
	"github.com/workforce-hub/attendance-backend/internal/pkg/metrics"
	"github.com/workforce-hub/attendance-backend/internal/pkg/utils"
)

const (
	msgPunchInSuccess  = "Punch in success"
	msgPunchOutSuccess = "Punch out success"
	msgSentForReview   = "You are not in the office, your request sent to the admin"
)

// PunchIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) PunchIn(ctx context.Context, req attendance.PunchRequest) (attendance.PunchInResult, error) {
	if err := req.Validate(); err != nil {
		return attendance.PunchInResult{}, err
	}

	now := s.clock()
	dayStart, dayEnd := utils.DayBounds(now, s.loc)

	existing, err := s.punchInRepo.GetLatestForDay(ctx, req.UserID, dayStart, dayEnd)
	if err != nil {
		return attendance.PunchInResult{}, fmt.Errorf("failed to get today's punch-in: %w", err)
	}
	if existing != nil {
		return attendance.PunchInResult{}, attendance.ErrAlreadyPunchedIn
	}

	lat, lon := *req.Latitude, *req.Longitude
	distance := s.geofence.Distance(lat, lon)

	record := attendance.PunchInRecord{
		UserID:      req.UserID,
		PunchInTime: now,
		PunchDate:   utils.DayKey(now, s.loc),
		Distance:    distance,
	}
	message := msgPunchInSuccess
	if s.geofence.Contains(distance) {
		record.PunchInLocation = attendance.LocationOffice
		record.WorkingMode = attendance.WorkingModeOnsite
		record.Status = attendance.StatusApproved
	} else {
		record.PunchInLocation = utils.FormatCoordinates(lat, lon)
		record.WorkingMode = attendance.WorkingModeWFH
		record.Status = attendance.StatusPending
		message = msgSentForReview
	}

	created, err := s.punchInRepo.Create(ctx, record)
	if err != nil {
		return attendance.PunchInResult{}, fmt.Errorf("failed to create punch-in: %w", err)
	}

	metrics.RecordPunch(string(attendance.KindPunchIn), string(created.Status), distance)
	if created.Status == attendance.StatusPending {
		s.notifyAdmins(ctx, attendance.KindPunchIn, created.ID, created.UserID)
	}

	return attendance.PunchInResult{
		Message: message,
		Record:  attendance.NewPunchInResponse(created),
	}, nil
}

// PunchOut implements attendance.AttendanceService.
// The working mode of a punch-out is always Office, whatever the distance.
func (s *AttendanceServiceImpl) PunchOut(ctx context.Context, req attendance.PunchRequest) (attendance.PunchOutResult, error) {
	if err := req.Validate(); err != nil {
		return attendance.PunchOutResult{}, err
	}

	now := s.clock()
	dayStart, dayEnd := utils.DayBounds(now, s.loc)

	punchIn, err := s.punchInRepo.GetLatestForDay(ctx, req.UserID, dayStart, dayEnd)
	if err != nil {
		return attendance.PunchOutResult{}, fmt.Errorf("failed to get today's punch-in: %w", err)
	}
	if punchIn == nil {
		return attendance.PunchOutResult{}, attendance.ErrNotPunchedIn
	}

	existing, err := s.punchOutRepo.GetLatestForDay(ctx, req.UserID, dayStart, dayEnd)
	if err != nil {
		return attendance.PunchOutResult{}, fmt.Errorf("failed to get today's punch-out: %w", err)
	}
	if existing != nil {
		return attendance.PunchOutResult{}, attendance.ErrAlreadyPunchedOut
	}

	lat, lon := *req.Latitude, *req.Longitude
	distance := s.geofence.Distance(lat, lon)

	record := attendance.PunchOutRecord{
		UserID:           req.UserID,
		PunchOutTime:     now,
		PunchDate:        utils.DayKey(now, s.loc),
		PunchOutLocation: utils.FormatCoordinates(lat, lon),
		Distance:         distance,
		WorkingMode:      attendance.WorkingModeOffice,
		Status:           attendance.StatusApproved,
	}
	message := msgPunchOutSuccess
	if !s.geofence.Contains(distance) {
		record.Status = attendance.StatusPending
		message = msgSentForReview
	}

	created, err := s.punchOutRepo.Create(ctx, record)
	if err != nil {
		return attendance.PunchOutResult{}, fmt.Errorf("failed to create punch-out: %w", err)
	}

	metrics.RecordPunch(string(attendance.KindPunchOut), string(created.Status), distance)
	if created.Status == attendance.StatusPending {
		s.notifyAdmins(ctx, attendance.KindPunchOut, created.ID, created.UserID)
	}

	return attendance.PunchOutResult{
		Message: message,
		Record:  attendance.NewPunchOutResponse(created),
	}, nil
}

// TodayPunchInStatus implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) TodayPunchInStatus(ctx context.Context, userID string) (attendance.PunchInStatusResponse, error) {
	dayStart, dayEnd := utils.DayBounds(s.clock(), s.loc)

	record, err := s.punchInRepo.GetLatestForDay(ctx, userID, dayStart, dayEnd)
	if err != nil {
		return attendance.PunchInStatusResponse{}, fmt.Errorf("failed to get today's punch-in: %w", err)
	}
	if record == nil {
		return attendance.PunchInStatusResponse{
			IsPunchedIn: false,
			Message:     "No punch-in record found for today",
		}, nil
	}

	return attendance.PunchInStatusResponse{
		IsPunchedIn: true,
		Message:     "User has punched in today",
		Details: &attendance.PunchInDetails{
			PunchInTime:     record.PunchInTime,
			PunchInLocation: record.PunchInLocation,
			Distance:        record.Distance,
			WorkingMode:     record.WorkingMode,
			Status:          record.Status,
		},
	}, nil
}

// TodayPunchOutStatus implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) TodayPunchOutStatus(ctx context.Context, userID string) (attendance.PunchOutStatusResponse, error) {
	now := s.clock()
	dayStart, dayEnd := utils.DayBounds(now, s.loc)

	record, err := s.punchOutRepo.GetLatestForDay(ctx, userID, dayStart, dayEnd)
	if err != nil {
		return attendance.PunchOutStatusResponse{}, fmt.Errorf("failed to get today's punch-out: %w", err)
	}
	if record == nil {
		return attendance.PunchOutStatusResponse{
			IsPunchedOut: false,
			Message:      "No punch-out record found for today",
		}, nil
	}

	return attendance.PunchOutStatusResponse{
		IsPunchedOut: true,
		Message:      "User has punched out today",
		Details: &attendance.PunchOutDetails{
			PunchOutTime:       record.PunchOutTime,
			PunchOutLocation:   record.PunchOutLocation,
			Distance:           record.Distance,
			Status:             record.Status,
			TimeElapsedMinutes: int64(math.Round(now.Sub(record.PunchOutTime).Minutes())),
		},
	}, nil
}
