package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeofence_Contains(t *testing.T) {
	g := Geofence{Latitude: 10, Longitude: 20, RadiusMeters: 100}

	assert.True(t, g.Contains(0))
	assert.True(t, g.Contains(100), "boundary is inside")
	assert.False(t, g.Contains(100.0001))
}

func TestGeofence_ZeroRadiusUsesDefault(t *testing.T) {
	g := Geofence{}
	assert.True(t, g.Contains(DefaultRadiusMeters))
	assert.False(t, g.Contains(DefaultRadiusMeters+1))
}

func TestGeofence_Distance(t *testing.T) {
	g := Geofence{Latitude: 10, Longitude: 20, RadiusMeters: 100}

	assert.Equal(t, 0.0, g.Distance(10, 20))
	assert.InDelta(t, 46.8, g.Distance(10.0003, 20.0003), 0.5)
}

func TestStatus_Valid(t *testing.T) {
	assert.True(t, StatusApproved.Valid())
	assert.True(t, StatusPending.Valid())
	assert.True(t, StatusRejected.Valid())
	assert.False(t, Status("true").Valid())
}

func TestUserReportRequest_Validate(t *testing.T) {
	req := UserReportRequest{UserID: "0190f4c2-8d7e-7a3b-9c1d-2e3f4a5b6c7d", StartDate: "2024-03-11", EndDate: "2024-03-11"}
	assert.NoError(t, req.Validate())

	req.EndDate = "2024-03-10"
	assert.ErrorIs(t, req.Validate(), ErrInvalidDateRange)
}

func TestPunchRequest_ValidateRequiresUser(t *testing.T) {
	lat, lon := 1.0, 2.0
	req := PunchRequest{Latitude: &lat, Longitude: &lon}
	assert.Error(t, req.Validate())

	req.UserID = "u1"
	assert.NoError(t, req.Validate())
}
