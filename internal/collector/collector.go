// Package collector walks one day's Bluefors log folder, pulls the freshest
// record out of every recognized file and flattens everything into a single
// metric-name-to-value mapping. A broken or missing file never takes down
// the rest of the run; its failure is recorded per file instead.
package collector

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	constants "cryopush/config"
	"cryopush/internal/catalog"
	"cryopush/internal/logfile"
	"cryopush/internal/logger"
)

// Fatal collection failures. Everything else stays scoped to one file.
var (
	ErrDateFolderNotFound = errors.New("date folder not found")
	ErrNoMetrics          = errors.New("no metrics collected from any file")
)

// ErrorKind classifies a per-file failure for operator-facing reporting
type ErrorKind string

const (
	KindNotFound   ErrorKind = "not_found"
	KindEmpty      ErrorKind = "empty"
	KindPermission ErrorKind = "permission"
	KindIO         ErrorKind = "io"
	KindMalformed  ErrorKind = "malformed"
)

// FileError records why a single file produced no samples
type FileError struct {
	File string
	Kind ErrorKind
	Err  error
}

func (fe FileError) Error() string {
	return fmt.Sprintf("%s: %s (%v)", fe.File, fe.Kind, fe.Err)
}

// Result is one collection cycle's output: the merged samples plus every
// per-file failure, in the order the files were attempted.
type Result struct {
	Samples    map[string]float64
	FileErrors []FileError
}

// Channel files are named like "CH1 T 24-03-18.log" / "CH6 R 24-03-18.log";
// the T/R marker is matched case-insensitively.
var channelFileRE = regexp.MustCompile(`^CH(\d+) (?i:([TR])) .*\.log$`)

// Collect reads every recognized log file in logsRoot's dated subfolder for
// day and returns the merged samples. It fails outright only when the dated
// folder is missing or when not a single file yielded a value; any other
// failure is captured in Result.FileErrors and skipped.
func Collect(logsRoot string, day time.Time) (*Result, error) {
	dateStr := day.Format(constants.DATE_FOLDER_LAYOUT)
	dateDir := filepath.Join(logsRoot, dateStr)

	info, err := os.Stat(dateDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrDateFolderNotFound, dateDir)
	}

	result := &Result{Samples: make(map[string]float64)}

	result.collectStatus(filepath.Join(dateDir, fmt.Sprintf(constants.STATUS_FILE_PATTERN, dateStr)))
	result.collectSingleValue(filepath.Join(dateDir, fmt.Sprintf(constants.FLOWMETER_FILE_PATTERN, dateStr)), "flowmeter")
	result.collectPairs(filepath.Join(dateDir, fmt.Sprintf(constants.HEATERS_FILE_PATTERN, dateStr)), logfile.ParseHeatersLine)
	result.collectPairs(filepath.Join(dateDir, fmt.Sprintf(constants.CHANNELS_FILE_PATTERN, dateStr)), logfile.ParseChannelsLine)
	result.collectPairs(filepath.Join(dateDir, fmt.Sprintf(constants.MAXIGAUGE_FILE_PATTERN, dateStr)), logfile.ParseMaxigaugeLine)
	result.collectChannelFiles(dateDir)

	if len(result.Samples) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoMetrics, dateDir)
	}
	return result, nil
}

// collectStatus reads the Status file; its raw keys go through the catalog
// for name resolution before they enter the merged mapping.
func (r *Result) collectStatus(path string) {
	line, err := logfile.LastNonEmptyLine(path)
	if err != nil {
		r.recordError(path, err)
		return
	}
	values, err := logfile.ParseStatusLine(line)
	if err != nil {
		r.recordError(path, err)
		return
	}
	for rawKey, value := range values {
		r.merge(catalog.ResolveMetricName(rawKey), value)
	}
}

// collectSingleValue reads a one-value-per-line file (flowmeter, channels)
func (r *Result) collectSingleValue(path, rawKey string) {
	line, err := logfile.LastNonEmptyLine(path)
	if err != nil {
		r.recordError(path, err)
		return
	}
	value, err := logfile.ParseValueLine(line)
	if err != nil {
		r.recordError(path, err)
		return
	}
	r.merge(catalog.ResolveMetricName(rawKey), value)
}

// collectPairs reads a multi-pair file whose parser already emits
// fully-qualified metric names (heaters, valves, maxigauge)
func (r *Result) collectPairs(path string, parse func(string) (map[string]float64, error)) {
	line, err := logfile.LastNonEmptyLine(path)
	if err != nil {
		r.recordError(path, err)
		return
	}
	values, err := parse(line)
	if err != nil {
		r.recordError(path, err)
		return
	}
	for name, value := range values {
		r.merge(name, value)
	}
}

// collectChannelFiles discovers the dynamically named per-sensor files.
// Channels 6 and 9 under T hold mK-range readings stored as raw kelvin;
// they are forwarded as-is, never converted.
func (r *Result) collectChannelFiles(dateDir string) {
	dirEntries, err := os.ReadDir(dateDir)
	if err != nil {
		r.recordError(dateDir, err)
		return
	}

	for _, entry := range dirEntries {
		if entry.IsDir() {
			continue
		}
		m := channelFileRE.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		channel, kind := m[1], m[2]

		var metricName string
		switch kind {
		case "T", "t":
			metricName = fmt.Sprintf("ch%s_t_kelvin", channel)
		default:
			metricName = fmt.Sprintf("ch%s_r_ohms", channel)
		}

		r.collectChannelValue(filepath.Join(dateDir, entry.Name()), metricName)
	}
}

func (r *Result) collectChannelValue(path, metricName string) {
	line, err := logfile.LastNonEmptyLine(path)
	if err != nil {
		r.recordError(path, err)
		return
	}
	value, err := logfile.ParseValueLine(line)
	if err != nil {
		r.recordError(path, err)
		return
	}
	r.merge(metricName, value)
}

// merge inserts a sample last-write-wins. No two files legitimately emit
// the same name, so a collision gets a warning rather than silence.
func (r *Result) merge(name string, value float64) {
	if prev, exists := r.Samples[name]; exists {
		logger.Warning("metric name collision on %s: overwriting %v with %v", name, prev, value)
	}
	r.Samples[name] = value
}

func (r *Result) recordError(path string, err error) {
	r.FileErrors = append(r.FileErrors, FileError{
		File: filepath.Base(path),
		Kind: classify(err),
		Err:  err,
	})
}

func classify(err error) ErrorKind {
	var mlErr *logfile.MalformedLineError
	switch {
	case errors.Is(err, logfile.ErrNotFound):
		return KindNotFound
	case errors.Is(err, logfile.ErrEmptyFile):
		return KindEmpty
	case errors.Is(err, logfile.ErrPermission):
		return KindPermission
	case errors.As(err, &mlErr):
		return KindMalformed
	default:
		return KindIO
	}
}
