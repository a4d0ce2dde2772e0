package domain

// DateFormat is the layout of availability dates (YYYY-MM-DD)
const DateFormat = "2006-01-02"

// Role values carried in the platform token
const (
	RoleAdmin  = "admin"
	RoleVendor = "vendor"
)

// DefaultTimezone is used to decide whether a slot has already started
const DefaultTimezone = "UTC"
