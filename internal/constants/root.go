package constants

const (
	AppName            = "ember"
	DefaultKeyringUser = "database-connection"
	SessionKeyringUser = "session-token"
	DefaultConfigPath  = "~/.config/ember/ember.db"
	Version            = "v0.2.0"

	// MaxActiveHabits is the hard cap on non-archived habits per user.
	MaxActiveHabits = 4

	// MaxHabitTitleLen is the maximum habit title length in characters.
	MaxHabitTitleLen = 30

	// MinPasswordLen is the minimum account password length.
	MinPasswordLen = 6
)
