// Package catalog maps raw instrument keys from the Bluefors log files to
// fully-qualified, unit-suffixed metric names plus the metadata (description,
// unit, display unit, group) the transport attaches to each sample.
package catalog

import "fmt"

// Entry describes one known instrument reading. MetricName already carries
// the unit suffix; Group is used as a categorical label for dashboards.
type Entry struct {
	RawKey      string
	MetricName  string
	Description string
	UnitSuffix  string
	DisplayUnit string
	Group       string
}

// entries is the single ordered source of truth. Both lookup maps are
// derived from it at init; the raw log files never change this table.
var entries = []Entry{
	// Status file - compressor pressures
	{"cpahp", "cpahp_mbar", "Compressor high pressure [Status file] (cpahp)", "_mbar", "pressurembar", "compressor"},
	{"cpahpa", "cpahpa_mbar", "Compressor high pressure actual [Status file] (cpahpa)", "_mbar", "pressurembar", "compressor"},
	{"cpalp", "cpalp_mbar", "Compressor low pressure [Status file] (cpalp)", "_mbar", "pressurembar", "compressor"},
	{"cpalpa", "cpalpa_mbar", "Compressor low pressure actual [Status file] (cpalpa)", "_mbar", "pressurembar", "compressor"},
	{"cpadp", "cpadp_mbar", "Compressor differential pressure [Status file] (cpadp)", "_mbar", "pressurembar", "compressor"},

	// Status file - compressor temperatures
	{"cpatempwi", "cpatempwi_celsius", "Compressor water inlet temperature [Status file] (cpatempwi)", "_celsius", "celsius", "compressor"},
	{"cpatempwo", "cpatempwo_celsius", "Compressor water outlet temperature [Status file] (cpatempwo)", "_celsius", "celsius", "compressor"},
	{"cpatempo", "cpatempo_celsius", "Compressor output temperature [Status file] (cpatempo)", "_celsius", "celsius", "compressor"},
	{"cpatemph", "cpatemph_celsius", "Compressor helium temperature [Status file] (cpatemph)", "_celsius", "celsius", "compressor"},

	// Status file - compressor electrical / runtime
	{"cpacurrent", "cpacurrent_amperes", "Compressor motor current [Status file] (cpacurrent)", "_amperes", "amp", "compressor"},
	{"cpahours", "cpahours_hours", "Compressor total operating hours [Status file] (cpahours)", "_hours", "h", "compressor"},

	// Status file - turbo pump (TC400)
	{"tc400actualspd", "tc400actualspd_hz", "Turbo pump actual speed [Status file] (tc400actualspd)", "_hz", "hertz", "turbo_pump"},
	{"tc400drvpower", "tc400drvpower_watts", "Turbo pump drive power [Status file] (tc400drvpower)", "_watts", "watt", "turbo_pump"},

	// Status file - scroll pump (nXDS)
	{"nxdspt", "nxdspt", "Scroll pump tip temperature raw sensor value [Status file] (nxdspt)", "", "short", "scroll_pump"},
	{"nxdsct", "nxdsct", "Scroll pump controller temperature raw sensor value [Status file] (nxdsct)", "", "short", "scroll_pump"},
	{"nxdsf", "nxdsf_hz", "Scroll pump frequency [Status file] (nxdsf)", "_hz", "hertz", "scroll_pump"},
	{"nxdstrs", "nxdstrs_seconds", "Scroll pump running time [Status file] (nxdstrs)", "_seconds", "s", "scroll_pump"},

	// Status file - control pressure (PCU / probe control)
	{"ctrl_pres", "ctrl_pres_mbar", "Control pressure [Status file] (ctrl_pres)", "_mbar", "pressurembar", "probe_control"},

	// CH1 - 50K flange
	{"ch1_t", "ch1_t_kelvin", "50K flange temperature [CH1 T file] (ch1_t)", "_kelvin", "kelvin", "fridge_temps"},
	{"ch1_r", "ch1_r_ohms", "50K flange resistance [CH1 R file] (ch1_r)", "_ohms", "ohm", "fridge_resistance"},

	// CH2 - 4K flange
	{"ch2_t", "ch2_t_kelvin", "4K flange temperature [CH2 T file] (ch2_t)", "_kelvin", "kelvin", "fridge_temps"},
	{"ch2_r", "ch2_r_ohms", "4K flange resistance [CH2 R file] (ch2_r)", "_ohms", "ohm", "fridge_resistance"},

	// CH5 - Still
	{"ch5_t", "ch5_t_kelvin", "Still temperature [CH5 T file] (ch5_t)", "_kelvin", "kelvin", "fridge_temps"},
	{"ch5_r", "ch5_r_ohms", "Still resistance [CH5 R file] (ch5_r)", "_ohms", "ohm", "fridge_resistance"},

	// CH6 - MXC (mixing chamber). The mK-range reading is stored as a raw
	// kelvin number in the source file; no conversion is applied on purpose.
	{"ch6_t", "ch6_t_kelvin", "MXC (mixing chamber) temperature, mK-range raw value in K [CH6 T file] (ch6_t)", "_kelvin", "kelvin", "fridge_temps"},
	{"ch6_r", "ch6_r_ohms", "MXC (mixing chamber) resistance [CH6 R file] (ch6_r)", "_ohms", "ohm", "fridge_resistance"},

	// CH9 - FSE (fridge sample environment), also mK-range raw kelvin
	{"ch9_t", "ch9_t_kelvin", "FSE (fridge sample environment) temperature, mK-range raw value in K [CH9 T file] (ch9_t)", "_kelvin", "kelvin", "fridge_temps"},
	{"ch9_r", "ch9_r_ohms", "FSE (fridge sample environment) resistance [CH9 R file] (ch9_r)", "_ohms", "ohm", "fridge_resistance"},

	// Flowmeter
	{"flowmeter", "flowmeter_mmol_per_s", "Mixture flow rate [Flowmeter file] (flowmeter)", "_mmol_per_s", "moles", "flow"},

	// Maxigauge - 6 pressure channels
	{"maxigauge_ch1", "maxigauge_ch1_pressure_mbar", "Maxigauge CH1 pressure [maxigauge file] (maxigauge_ch1)", "_pressure_mbar", "pressurembar", "maxigauge"},
	{"maxigauge_ch2", "maxigauge_ch2_pressure_mbar", "Maxigauge CH2 pressure [maxigauge file] (maxigauge_ch2)", "_pressure_mbar", "pressurembar", "maxigauge"},
	{"maxigauge_ch3", "maxigauge_ch3_pressure_mbar", "Maxigauge CH3 pressure [maxigauge file] (maxigauge_ch3)", "_pressure_mbar", "pressurembar", "maxigauge"},
	{"maxigauge_ch4", "maxigauge_ch4_pressure_mbar", "Maxigauge CH4 pressure [maxigauge file] (maxigauge_ch4)", "_pressure_mbar", "pressurembar", "maxigauge"},
	{"maxigauge_ch5", "maxigauge_ch5_pressure_mbar", "Maxigauge CH5 pressure [maxigauge file] (maxigauge_ch5)", "_pressure_mbar", "pressurembar", "maxigauge"},
	{"maxigauge_ch6", "maxigauge_ch6_pressure_mbar", "Maxigauge CH6 pressure [maxigauge file] (maxigauge_ch6)", "_pressure_mbar", "pressurembar", "maxigauge"},
}

var (
	byRawKey     map[string]*Entry
	byMetricName map[string]*Entry
)

func init() {
	byRawKey = make(map[string]*Entry, len(entries))
	byMetricName = make(map[string]*Entry, len(entries))
	for i := range entries {
		e := &entries[i]
		if _, dup := byMetricName[e.MetricName]; dup {
			// A duplicate fully-qualified name is a defect in this table,
			// not a runtime condition.
			panic(fmt.Sprintf("catalog: duplicate metric name %q", e.MetricName))
		}
		byRawKey[e.RawKey] = e
		byMetricName[e.MetricName] = e
	}
}

// lookup accepts either a raw instrument key or a fully-qualified metric name
func lookup(key string) *Entry {
	if e, ok := byRawKey[key]; ok {
		return e
	}
	if e, ok := byMetricName[key]; ok {
		return e
	}
	return nil
}

// ResolveMetricName returns the fully-qualified metric name for a raw key.
// Unknown keys first get a prefix match against known metric names
// (rawKey + "_" + suffix) and otherwise pass through unchanged, so
// unmapped instruments still reach the backend.
func ResolveMetricName(rawKey string) string {
	if e, ok := byRawKey[rawKey]; ok {
		return e.MetricName
	}
	prefix := rawKey + "_"
	for _, e := range entries {
		if len(e.MetricName) > len(prefix) && e.MetricName[:len(prefix)] == prefix {
			return e.MetricName
		}
	}
	return rawKey
}

// Describe returns the human-readable description for a raw key or metric
// name. Unknown keys get a TODO-prefixed fallback embedding the key verbatim
// so they are easy to spot on the backend.
func Describe(key string) string {
	if e := lookup(key); e != nil {
		return e.Description
	}
	return fmt.Sprintf("TODO: unknown metric [unknown source] (%s)", key)
}

// GroupOf returns the logical group for a raw key or metric name
func GroupOf(key string) string {
	if e := lookup(key); e != nil {
		return e.Group
	}
	return "unknown"
}

// UnitSuffixOf returns the unit suffix for a raw key or metric name (may be empty)
func UnitSuffixOf(key string) string {
	if e := lookup(key); e != nil {
		return e.UnitSuffix
	}
	return ""
}

// DisplayUnitOf returns the dashboard unit hint for a raw key or metric name
func DisplayUnitOf(key string) string {
	if e := lookup(key); e != nil {
		return e.DisplayUnit
	}
	return ""
}

// Entries returns the catalog in declaration order
func Entries() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}
