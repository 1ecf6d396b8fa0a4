package attendance

import (
	"context"
	"errors"
	"fmt"

	"github.com/workforce-hub/attendance-backend/internal/domain/attendance"
	"github.com/workforce-hub/attendance-backend/internal/pkg/metrics"
)

// ListPendingRequests implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListPendingRequests(ctx context.Context) (attendance.PendingRequestsResponse, error) {
	punchIns, err := s.punchInRepo.ListByStatus(ctx, attendance.StatusPending)
	if err != nil {
		return attendance.PendingRequestsResponse{}, fmt.Errorf("failed to list pending punch-ins: %w", err)
	}
	punchOuts, err := s.punchOutRepo.ListByStatus(ctx, attendance.StatusPending)
	if err != nil {
		return attendance.PendingRequestsResponse{}, fmt.Errorf("failed to list pending punch-outs: %w", err)
	}

	resp := attendance.PendingRequestsResponse{
		PendingPunchIns:  make([]attendance.PunchInResponse, 0, len(punchIns)),
		PendingPunchOuts: make([]attendance.PunchOutResponse, 0, len(punchOuts)),
	}
	for _, r := range punchIns {
		resp.PendingPunchIns = append(resp.PendingPunchIns, attendance.NewPunchInResponse(r))
	}
	for _, r := range punchOuts {
		resp.PendingPunchOuts = append(resp.PendingPunchOuts, attendance.NewPunchOutResponse(r))
	}
	return resp, nil
}

// AcceptRequest implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) AcceptRequest(ctx context.Context, req attendance.ReviewRequest) (attendance.ReviewResponse, error) {
	return s.review(ctx, req, attendance.StatusApproved)
}

// RejectRequest implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) RejectRequest(ctx context.Context, req attendance.ReviewRequest) (attendance.ReviewResponse, error) {
	return s.review(ctx, req, attendance.StatusRejected)
}

// review moves a pending record to status. The id is looked up among punch-ins
// first, then punch-outs. Each lookup is a conditional update on status=pending,
// so concurrent reviewers cannot both succeed.
func (s *AttendanceServiceImpl) review(ctx context.Context, req attendance.ReviewRequest, status attendance.Status) (attendance.ReviewResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.ReviewResponse{}, err
	}
	reviewedAt := s.clock()

	in, err := s.punchInRepo.UpdateStatusIfPending(ctx, req.RequestID, status, req.ReviewerID, reviewedAt)
	if err == nil {
		metrics.RecordReview(string(attendance.KindPunchIn), string(status))
		s.notifyOwner(attendance.KindPunchIn, in.ID, in.UserID, in.Status)
		resp := attendance.NewPunchInResponse(in)
		return attendance.ReviewResponse{Kind: attendance.KindPunchIn, PunchIn: &resp}, nil
	}
	if !errors.Is(err, attendance.ErrRequestNotFound) {
		return attendance.ReviewResponse{}, fmt.Errorf("failed to review punch-in: %w", err)
	}

	out, err := s.punchOutRepo.UpdateStatusIfPending(ctx, req.RequestID, status, req.ReviewerID, reviewedAt)
	if err != nil {
		if errors.Is(err, attendance.ErrRequestNotFound) {
			return attendance.ReviewResponse{}, attendance.ErrRequestNotFound
		}
		return attendance.ReviewResponse{}, fmt.Errorf("failed to review punch-out: %w", err)
	}

	metrics.RecordReview(string(attendance.KindPunchOut), string(status))
	s.notifyOwner(attendance.KindPunchOut, out.ID, out.UserID, out.Status)
	resp := attendance.NewPunchOutResponse(out)
	return attendance.ReviewResponse{Kind: attendance.KindPunchOut, PunchOut: &resp}, nil
}

// PendingCounts implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) PendingCounts(ctx context.Context) (attendance.PendingCounts, error) {
	ins, err := s.punchInRepo.CountByStatus(ctx, attendance.StatusPending)
	if err != nil {
		return attendance.PendingCounts{}, fmt.Errorf("failed to count pending punch-ins: %w", err)
	}
	outs, err := s.punchOutRepo.CountByStatus(ctx, attendance.StatusPending)
	if err != nil {
		return attendance.PendingCounts{}, fmt.Errorf("failed to count pending punch-outs: %w", err)
	}
	return attendance.PendingCounts{PunchIns: ins, PunchOuts: outs}, nil
}
