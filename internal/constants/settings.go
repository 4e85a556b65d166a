package constants

const (
	// Local key-value store keys
	KeyReminderTime = "reminder_time"
	KeyTimezone     = "timezone"

	// Default Settings Values
	DefaultReminderHour   = 20 // 8 PM
	DefaultReminderMinute = 0
	DefaultTimezone       = "Local" // Use system local timezone by default
)
