package attendance

import (
	"time"

	"github.com/workforce-hub/attendance-backend/internal/pkg/utils"
)

// Status is the review state of a punch record.
type Status string

const (
	StatusApproved Status = "approved"
	StatusPending  Status = "pending"
	StatusRejected Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusApproved, StatusPending, StatusRejected:
		return true
	}
	return false
}

type WorkingMode string

const (
	WorkingModeOnsite WorkingMode = "Onsite"
	WorkingModeWFH    WorkingMode = "WFH"
	WorkingModeOffice WorkingMode = "Office"
)

// Kind distinguishes the two record tables.
type Kind string

const (
	KindPunchIn  Kind = "punch_in"
	KindPunchOut Kind = "punch_out"
)

// LocationOffice is stored as the punch-in location when the user is inside the geofence.
const LocationOffice = "Office"

type PunchInRecord struct {
	ID              string
	UserID          string
	PunchInTime     time.Time
	PunchDate       string
	PunchInLocation string
	Distance        float64
	WorkingMode     WorkingMode
	Status          Status
	ReviewedBy      *string
	ReviewedAt      *time.Time
	CreatedAt       time.Time

	// Join
	UserName        string
	Email           string
	ProfilePhotoURL *string
}

type PunchOutRecord struct {
	ID               string
	UserID           string
	PunchOutTime     time.Time
	PunchDate        string
	PunchOutLocation string
	Distance         float64
	WorkingMode      WorkingMode
	Status           Status
	ReviewedBy       *string
	ReviewedAt       *time.Time
	CreatedAt        time.Time

	// Join
	UserName        string
	Email           string
	ProfilePhotoURL *string
}

// Geofence is the circle around the office inside which punches are approved automatically.
type Geofence struct {
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
}

// DefaultRadiusMeters applies when a Geofence is built without a radius.
const DefaultRadiusMeters = 100

// Distance returns meters between the given point and the office.
func (g Geofence) Distance(lat, lon float64) float64 {
	return utils.CalculateHaversineDistance(lat, lon, g.Latitude, g.Longitude)
}

// Contains reports whether a distance falls inside the radius. The boundary is inclusive.
func (g Geofence) Contains(distance float64) bool {
	radius := g.RadiusMeters
	if radius <= 0 {
		radius = DefaultRadiusMeters
	}
	return distance <= radius
}
