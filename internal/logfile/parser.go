package logfile

import (
	"fmt"
	"strconv"
	"strings"
)

// MalformedLineError reports a line that does not match its file's format,
// citing the offending content so an operator can find the bad record.
type MalformedLineError struct {
	Reason string
	Line   string
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("malformed line (%s): %s", e.Reason, e.Line)
}

func malformed(line, reason string, args ...interface{}) error {
	return &MalformedLineError{Reason: fmt.Sprintf(reason, args...), Line: line}
}

// splitRecord splits a comma-separated record and drops the leading date and
// time fields every Bluefors format starts with.
func splitRecord(line string) ([]string, error) {
	parts := strings.Split(line, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) < 3 {
		return nil, malformed(line, "expected date, time and at least one data field")
	}
	return parts[2:], nil
}

func parseValue(line, text string) (float64, error) {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, malformed(line, "invalid numeric value %q", text)
	}
	return v, nil
}

// ParseStatusLine parses the Status file format: repeating (key, value)
// pairs after the date and time fields. Returns raw instrument keys; name
// resolution is the catalog's job.
func ParseStatusLine(line string) (map[string]float64, error) {
	fields, err := splitRecord(line)
	if err != nil {
		return nil, err
	}
	if len(fields)%2 != 0 {
		return nil, malformed(line, "odd key/value field count %d", len(fields))
	}

	values := make(map[string]float64, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		key := fields[i]
		if key == "" {
			return nil, malformed(line, "empty key at field %d", i+2)
		}
		v, err := parseValue(line, fields[i+1])
		if err != nil {
			return nil, err
		}
		values[key] = v
	}
	return values, nil
}

// ParseValueLine parses the single-value formats (channel T/R files and the
// flowmeter file): exactly one data field after date and time.
func ParseValueLine(line string) (float64, error) {
	fields, err := splitRecord(line)
	if err != nil {
		return 0, err
	}
	return parseValue(line, fields[0])
}

// ParseHeatersLine parses the Heaters file: repeating (heater id, power)
// pairs, keyed as heater_<id>_watts.
func ParseHeatersLine(line string) (map[string]float64, error) {
	fields, err := splitRecord(line)
	if err != nil {
		return nil, err
	}

	values := make(map[string]float64, len(fields)/2)
	for i := 0; i+1 < len(fields); i += 2 {
		id := fields[i]
		power, err := parseValue(line, fields[i+1])
		if err != nil {
			return nil, err
		}
		values[fmt.Sprintf("heater_%s_watts", id)] = power
	}
	if len(values) == 0 {
		return nil, malformed(line, "no heater id/power pairs found")
	}
	return values, nil
}

// ParseChannelsLine parses the Channels file (valve and relay states): one
// leading field is discarded, then repeating (name, state) pairs keyed as
// valve_<sanitized name>. Names are sanitized as written, whitespace
// included, so "V-1 " and "V-1" stay distinct metrics.
func ParseChannelsLine(line string) (map[string]float64, error) {
	parts := strings.Split(line, ",")
	// Date, time and one status word precede the pairs
	if len(parts) < 5 {
		return nil, malformed(line, "no valve name/state pairs found")
	}
	fields := parts[3:]

	values := make(map[string]float64, len(fields)/2)
	for i := 0; i+1 < len(fields); i += 2 {
		name := fields[i]
		state, err := parseValue(line, strings.TrimSpace(fields[i+1]))
		if err != nil {
			return nil, err
		}
		values[fmt.Sprintf("valve_%s", SanitizeName(name))] = state
	}
	if len(values) == 0 {
		return nil, malformed(line, "no valve name/state pairs found")
	}
	return values, nil
}

// ParseMaxigaugeLine parses the maxigauge file: repeating six-field blocks
// of (channel label, name, status, pressure, x, x); only the label and the
// pressure are kept, keyed as maxigauge_<label>_pressure_mbar.
func ParseMaxigaugeLine(line string) (map[string]float64, error) {
	fields, err := splitRecord(line)
	if err != nil {
		return nil, err
	}

	values := make(map[string]float64, len(fields)/6)
	for i := 0; i+5 < len(fields); i += 6 {
		label := strings.ToLower(fields[i])
		pressure, err := parseValue(line, fields[i+3])
		if err != nil {
			return nil, err
		}
		values[fmt.Sprintf("maxigauge_%s_pressure_mbar", label)] = pressure
	}
	if len(values) == 0 {
		return nil, malformed(line, "no complete six-field gauge blocks found")
	}
	return values, nil
}

// SanitizeName replaces every character outside [A-Za-z0-9_] with an
// underscore, one for one, so instrument names become legal identifier parts.
func SanitizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
