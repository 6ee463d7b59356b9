package constants

import (
	"time"
)

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName            = "plop"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/plop/plop.db"
	Version            = "v0.3.0"

	// EnvDBConnection holds a PostgreSQL connection string when the keyring is unavailable
	EnvDBConnection = "PLOP_DB_CONNECTION"

	// Log file rotation
	LogDirName    = "logs"
	LogMaxSizeMB  = 10
	LogMaxBackups = 3
	LogMaxAgeDays = 28

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "plop-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "plop-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.plop"
	TrayAppExecutable      = "plop-tray"

	// Mock auth
	UserIDPrefix      = "user_"
	MobileUsername    = "MobileUser"
	EmailUsername     = "EmailUser"
	MinPasswordLength = 6
	AvatarURLFormat   = "https://picsum.photos/%d/%d?random=%d"
	AvatarSize        = 100
	AvatarEditSize    = 200
	AvatarRandomRange = 1000
)

// Session States
const (
	StateTracker SessionState = iota
	StateHistory
	StateLeaderboard
	StateProfile
	StateInbox
	StateLogForm
	StateEditProfile
	StateConfirmClear
	StateLogin
)

// TabCount is the number of top-level TUI tabs, which are the first states
const TabCount = 4
