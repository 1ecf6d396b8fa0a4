package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/workforce-hub/attendance-backend/internal/domain/attendance"
	"github.com/workforce-hub/attendance-backend/internal/domain/user"
	"github.com/workforce-hub/attendance-backend/internal/pkg/utils"
)

// workingHours is the shift length in hours rounded to two decimals.
func workingHours(in, out time.Time) float64 {
	return utils.RoundTo(out.Sub(in).Hours(), 2)
}

func average(sum float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return utils.RoundTo(sum/float64(n), 2)
}

// DailyAttendance implements attendance.AttendanceService.
// Only approved records count; a pending punch-in leaves the user absent until reviewed.
func (s *AttendanceServiceImpl) DailyAttendance(ctx context.Context, req attendance.DailyAttendanceRequest) (attendance.DailyAttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.DailyAttendanceResponse{}, err
	}

	day := s.clock()
	if req.Date != "" {
		parsed, err := utils.ParseDay(req.Date, s.loc)
		if err != nil {
			return attendance.DailyAttendanceResponse{}, attendance.ErrInvalidDateRange
		}
		day = parsed
	}
	dayStart, dayEnd := utils.DayBounds(day, s.loc)

	users, err := s.userRepo.ListActiveByRole(ctx, user.RoleUser)
	if err != nil {
		return attendance.DailyAttendanceResponse{}, fmt.Errorf("failed to list users: %w", err)
	}

	filter := attendance.RecordFilter{Status: attendance.StatusApproved, From: dayStart, To: dayEnd}
	punchIns, err := s.punchInRepo.ListInRange(ctx, filter)
	if err != nil {
		return attendance.DailyAttendanceResponse{}, fmt.Errorf("failed to list punch-ins: %w", err)
	}
	punchOuts, err := s.punchOutRepo.ListInRange(ctx, filter)
	if err != nil {
		return attendance.DailyAttendanceResponse{}, fmt.Errorf("failed to list punch-outs: %w", err)
	}

	// Listings are ascending, so the latest record per user wins.
	inByUser := make(map[string]attendance.PunchInRecord, len(punchIns))
	for _, r := range punchIns {
		inByUser[r.UserID] = r
	}
	outByUser := make(map[string]attendance.PunchOutRecord, len(punchOuts))
	for _, r := range punchOuts {
		outByUser[r.UserID] = r
	}

	records := make([]attendance.DailyAttendanceRecord, 0, len(users))
	var summary attendance.DailySummary
	var hoursSum float64

	for _, u := range users {
		rec := attendance.DailyAttendanceRecord{
			UserID:          u.ID,
			UserName:        u.UserName,
			Email:           u.Email,
			ProfilePhotoURL: u.ProfilePhotoURL,
			Status:          attendance.DayStatusAbsent,
		}

		if in, ok := inByUser[u.ID]; ok {
			rec.PunchInTime = &in.PunchInTime
			rec.PunchInLocation = &in.PunchInLocation
			rec.Distance = &in.Distance
			rec.WorkingMode = &in.WorkingMode
			rec.Status = attendance.DayStatusPresent

			if out, ok := outByUser[u.ID]; ok {
				hours := workingHours(in.PunchInTime, out.PunchOutTime)
				rec.PunchOutTime = &out.PunchOutTime
				rec.PunchOutLocation = &out.PunchOutLocation
				rec.WorkingHours = &hours
				rec.Status = attendance.DayStatusCompleted
				hoursSum += hours
			}
		}

		switch rec.Status {
		case attendance.DayStatusAbsent:
			summary.AbsentEmployees++
		case attendance.DayStatusPresent:
			summary.ActiveEmployees++
		case attendance.DayStatusCompleted:
			summary.CompletedShifts++
		}
		records = append(records, rec)
	}

	summary.TotalRecords = len(records)
	summary.AverageWorkingHours = average(hoursSum, summary.CompletedShifts)

	return attendance.DailyAttendanceResponse{
		Date:    utils.DayKey(dayStart, s.loc),
		Records: records,
		Summary: summary,
	}, nil
}

// UserReport implements attendance.AttendanceService.
// Both dates are inclusive calendar days in the service timezone.
func (s *AttendanceServiceImpl) UserReport(ctx context.Context, req attendance.UserReportRequest) (attendance.UserReportResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.UserReportResponse{}, err
	}

	start, err := utils.ParseDay(req.StartDate, s.loc)
	if err != nil {
		return attendance.UserReportResponse{}, attendance.ErrInvalidDateRange
	}
	end, err := utils.ParseDay(req.EndDate, s.loc)
	if err != nil {
		return attendance.UserReportResponse{}, attendance.ErrInvalidDateRange
	}
	_, endOfRange := utils.DayBounds(end, s.loc)

	u, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return attendance.UserReportResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	filter := attendance.RecordFilter{
		UserID: req.UserID,
		Status: attendance.StatusApproved,
		From:   start,
		To:     endOfRange,
	}
	punchIns, err := s.punchInRepo.ListInRange(ctx, filter)
	if err != nil {
		return attendance.UserReportResponse{}, fmt.Errorf("failed to list punch-ins: %w", err)
	}
	punchOuts, err := s.punchOutRepo.ListInRange(ctx, filter)
	if err != nil {
		return attendance.UserReportResponse{}, fmt.Errorf("failed to list punch-outs: %w", err)
	}

	outByDay := make(map[string]attendance.PunchOutRecord, len(punchOuts))
	for _, r := range punchOuts {
		outByDay[utils.DayKey(r.PunchOutTime, s.loc)] = r
	}

	records := make([]attendance.UserReportRecord, 0, len(punchIns))
	var summary attendance.UserReportSummary
	var hoursSum float64

	for _, in := range punchIns {
		day := utils.DayKey(in.PunchInTime, s.loc)
		rec := attendance.UserReportRecord{
			Date:        day,
			PunchInTime: in.PunchInTime,
			Status:      attendance.DayStatusPresent,
		}
		if out, ok := outByDay[day]; ok {
			hours := workingHours(in.PunchInTime, out.PunchOutTime)
			rec.PunchOutTime = &out.PunchOutTime
			rec.WorkingHours = &hours
			rec.Status = attendance.DayStatusCompleted
			summary.CompletedShifts++
			hoursSum += hours
		}
		records = append(records, rec)
	}

	summary.TotalDaysPresent = len(records)
	summary.TotalWorkingDays = utils.CountWeekdays(start, end)
	summary.AttendancePercentage = attendancePercentage(summary.TotalDaysPresent, summary.TotalWorkingDays)
	summary.AverageWorkingHours = average(hoursSum, summary.CompletedShifts)

	return attendance.UserReportResponse{
		UserID: u.ID,
		UserDetails: attendance.UserDetails{
			UserName:        u.UserName,
			ProfilePhotoURL: u.ProfilePhotoURL,
		},
		Period: attendance.Period{
			StartDate: req.StartDate,
			EndDate:   req.EndDate,
		},
		Summary: summary,
		Records: records,
	}, nil
}

// attendancePercentage renders present/working*100 with two decimals, "0.00" for an empty range.
func attendancePercentage(present, working int) string {
	if working == 0 {
		return "0.00"
	}
	return fmt.Sprintf("%.2f", float64(present)/float64(working)*100)
}
