package constants

// Log file naming inside the dated folder. The control software names
// every file after the folder's date; %s is the YY-MM-DD date string.
const (
	DATE_FOLDER_LAYOUT = "06-01-02" // YY-MM-DD

	STATUS_FILE_PATTERN    = "Status_%s.log"
	FLOWMETER_FILE_PATTERN = "Flowmeter %s.log"
	HEATERS_FILE_PATTERN   = "Heaters %s.log"
	CHANNELS_FILE_PATTERN  = "Channels %s.log"
	MAXIGAUGE_FILE_PATTERN = "maxigauge %s.log"
)

// Transport selection
const (
	TRANSPORT_PUSHGATEWAY = "pushgateway"
	TRANSPORT_OTLP        = "otlp"
	TRANSPORT_NONE        = "none"
)

// Push defaults
const (
	DEFAULT_JOB_NAME     = "sensor_data"
	DEFAULT_TRANSPORT    = TRANSPORT_PUSHGATEWAY
	PUSH_TIMEOUT_SECONDS = 30

	// Heartbeat gauge pushed on every cycle, even an empty one
	HEARTBEAT_METRIC = "last_push_timestamp_seconds"
	HEARTBEAT_HELP   = "Unix epoch of the most recent successful push"
)

// Report command limits (the logs directory is never written to;
// reports land in the config directory)
const (
	REPORT_MAX_FILE_SIZE = 50 * 1024 * 1024 // skip anything larger
	REPORT_MAX_LINE_LEN  = 300              // truncate sampled lines past this
	REPORT_FILE_NAME     = "report.txt"
	REPORT_UPLOAD_URL    = "https://dpaste.org/api/"
)

// File paths
const (
	CONFIG_DIR_NAME = "/.cryopush"
	LOG_FILE_NAME   = "cryopush.log"
	STATE_FILE_NAME = "lastrun.cbor"
)

// Self-metric names for host diagnostics
const (
	SELF_METRIC_LOGS_VOLUME_USED = "cryopush_logs_volume_used_percent"
	SELF_METRIC_HOST_UPTIME      = "cryopush_host_uptime_seconds"
)
