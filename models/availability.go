package models

import "time"

// Availability is one recurring weekly rule owned by a provider: a working
// window for one day of the week, a break carved out of it, and the session
// length used to cut the window into bookable times.
type Availability struct {
	ID                     string    `bson:"id" json:"id"`
	ProviderID             string    `bson:"providerId" json:"providerId"`
	DayOfWeek              int       `bson:"dayOfWeek" json:"dayOfWeek"` // 1=Monday .. 7=Sunday
	DayLabel               string    `bson:"dayLabel" json:"dayLabel"`   // display only, derived from DayOfWeek
	StartTime              string    `bson:"startTime" json:"startTime"` // "HH:MM"
	EndTime                string    `bson:"endTime" json:"endTime"`     // "HH:MM"
	BreakStart             string    `bson:"breakStart" json:"breakStart"`
	BreakEnd               string    `bson:"breakEnd" json:"breakEnd"`
	SessionDurationMinutes int       `bson:"sessionDurationMinutes" json:"sessionDurationMinutes"`
	CreatedAt              time.Time `bson:"createdAt" json:"createdAt"`
}

// WeeklyScheduleRequest is the payload for saving a provider's weekly
// schedule. One Availability record is created per selected day; the window
// and break apply to all of them.
type WeeklyScheduleRequest struct {
	Days                   []int  `json:"days" binding:"required,min=1"` // 1=Monday .. 7=Sunday
	StartTime              string `json:"startTime" binding:"required"`
	EndTime                string `json:"endTime" binding:"required"`
	BreakStart             string `json:"breakStart" binding:"required"`
	BreakEnd               string `json:"breakEnd" binding:"required"`
	SessionDurationMinutes int    `json:"sessionDurationMinutes" binding:"required"`
}
