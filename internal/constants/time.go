package constants

const (
	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// DurationFormat renders a timing session as MM:SS
	DurationFormat = "%02d:%02d"
)

// TimestampFormat is the fixed-width UTC layout used for stored timestamps.
// Fixed width keeps lexical order equal to chronological order.
const TimestampFormat = "2006-01-02T15:04:05.000Z07:00"
