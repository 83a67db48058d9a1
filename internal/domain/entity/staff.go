package entity

import "time"

// Attendance statuses.
const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
	AttendanceHalfDay = "half_day"
)

// Staff is a farm worker employed by a farmer. Staff members do not
// authenticate; they are records owned by the farmer's account.
type Staff struct {
	ID             string
	FarmerID       string
	Name           string
	Phone          string
	Role           string // e.g. "milker", "manager"
	DailyWageCents int64
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Attendance is one record per staff member per work date.
type Attendance struct {
	ID        string
	StaffID   string
	WorkDate  time.Time
	Status    string
	CreatedAt time.Time
}
