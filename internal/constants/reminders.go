package constants

const (
	// ReminderNotificationID identifies the recurring daily reminder.
	ReminderNotificationID = "daily-habit-reminder"

	// FutureReminderPrefix prefixes the one-shot reminders queued for the
	// days following a fully completed day.
	FutureReminderPrefix = "daily-habit-reminder-future-"

	// FutureReminderDays is how many one-shot reminders are queued when the
	// recurring reminder is suspended for today.
	FutureReminderDays = 7

	ReminderTitle = "Don't forget your habits! ✨"
	ReminderBody  = "You still have habits to complete today. Keep your streak going!"

	NotificationDurationMs = 8000
	NotifierLockfileName   = "ember-tray.lock"
	TrayAppIdentifier      = "ember-tray"
)

// MilestoneThresholds are the streak lengths that trigger a one-time
// celebration, ascending.
var MilestoneThresholds = []int{7, 14, 30, 60, 100, 200, 365}

// MilestoneLookbackDays bounds how far back logs are fetched when a
// celebration check recomputes the streak.
const MilestoneLookbackDays = 400
