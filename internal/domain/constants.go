package domain

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// FilePermissions is the permission for generated images and history (rw-r--r--)
	FilePermissions = 0o644
	// SecureFilePermissions is the permission for the config file (rw-------)
	SecureFilePermissions = 0o600
)

// Rendering constants
const (
	// ModuleSize is the pixel side length of one QR module
	ModuleSize = 20
	// QuietZoneModules is the border width around the matrix, in modules
	QuietZoneModules = 1
	// DefaultECCLevel is used when no level is requested
	DefaultECCLevel = ECCQuartile
	// MinVersion and MaxVersion bound the QR size class
	MinVersion = 1
	MaxVersion = 40
	// DefaultJPEGQuality is the JPEG encoder quality when none is configured
	DefaultJPEGQuality = 95
)

// Input limits
const (
	// MaxTextLength is the longest payload accepted, in characters
	MaxTextLength = 1000
)

// History constants
const (
	// DefaultHistoryFile is the history document, relative to the working directory
	DefaultHistoryFile = "qrcodes_history.json"
	// DefaultHistoryLimit is the default number of history records to display
	DefaultHistoryLimit = 20
	// HistoryBackendJSON and HistoryBackendSQLite name the storage backends
	HistoryBackendJSON   = "json"
	HistoryBackendSQLite = "sqlite"
)

// Default output file names, without extension
const (
	DefaultTextFileName   = "qrcode"
	DefaultWiFiFileName   = "wifi_qrcode"
	DefaultSocialFileName = "social_qrcode"
)
