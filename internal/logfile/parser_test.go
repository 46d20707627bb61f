package logfile

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func floatEq(a, b float64) bool {
	return math.Abs(a-b) < 1e-12*math.Max(1, math.Abs(b))
}

func TestParseStatusLine(t *testing.T) {
	line := "24-03-18,10:15:02,cpahp,281.5,cpalp,98.2,cpatempwi,21.4"
	values, err := ParseStatusLine(line)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(values) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(values))
	}
	want := map[string]float64{"cpahp": 281.5, "cpalp": 98.2, "cpatempwi": 21.4}
	for k, v := range want {
		if !floatEq(values[k], v) {
			t.Errorf("values[%q] = %v, want %v", k, values[k], v)
		}
	}
}

func TestParseStatusLine_Malformed(t *testing.T) {
	cases := []struct {
		name string
		line string
	}{
		{"too few fields", "24-03-18,10:15:02"},
		{"odd pair count", "24-03-18,10:15:02,cpahp,281.5,cpalp"},
		{"empty key", "24-03-18,10:15:02,,281.5"},
		{"non-numeric value", "24-03-18,10:15:02,cpahp,abc"},
	}
	for _, tc := range cases {
		_, err := ParseStatusLine(tc.line)
		var mlErr *MalformedLineError
		if !errors.As(err, &mlErr) {
			t.Errorf("%s: expected MalformedLineError, got %v", tc.name, err)
		}
	}
}

func TestParseValueLine(t *testing.T) {
	v, err := ParseValueLine("24-03-18,10:15:02,2.91E+2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !floatEq(v, 291.0) {
		t.Errorf("got %v, want 291.0", v)
	}

	// Parsing the same line twice yields the same float
	v2, _ := ParseValueLine("24-03-18,10:15:02,2.91E+2")
	if v != v2 {
		t.Errorf("parse not idempotent: %v vs %v", v, v2)
	}
}

func TestParseValueLine_Malformed(t *testing.T) {
	if _, err := ParseValueLine("24-03-18,10:15:02"); err == nil {
		t.Error("expected error for missing value field")
	}
	if _, err := ParseValueLine("24-03-18,10:15:02,not-a-number"); err == nil {
		t.Error("expected error for non-numeric value")
	}
}

func TestParseHeatersLine(t *testing.T) {
	values, err := ParseHeatersLine("d,t,0,0.0,1,0.008")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !floatEq(values["heater_0_watts"], 0.0) {
		t.Errorf("heater_0_watts = %v, want 0.0", values["heater_0_watts"])
	}
	if !floatEq(values["heater_1_watts"], 0.008) {
		t.Errorf("heater_1_watts = %v, want 0.008", values["heater_1_watts"])
	}
}

func TestParseHeatersLine_Malformed(t *testing.T) {
	if _, err := ParseHeatersLine("d,t"); err == nil {
		t.Error("expected error for zero pairs")
	}
	if _, err := ParseHeatersLine("d,t,0,watts"); err == nil {
		t.Error("expected error for non-numeric power")
	}
}

func TestParseChannelsLine(t *testing.T) {
	values, err := ParseChannelsLine("24-03-18,10:15:02,7,V-1 ,1,V-2,0,turbo1,1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Trailing space in the raw name sanitizes to a trailing underscore
	if !floatEq(values["valve_V_1_"], 1) {
		t.Errorf("valve_V_1_ = %v, want 1", values["valve_V_1_"])
	}
	if !floatEq(values["valve_V_2"], 0) {
		t.Errorf("valve_V_2 = %v, want 0", values["valve_V_2"])
	}
	if !floatEq(values["valve_turbo1"], 1) {
		t.Errorf("valve_turbo1 = %v, want 1", values["valve_turbo1"])
	}
}

func TestParseChannelsLine_Malformed(t *testing.T) {
	if _, err := ParseChannelsLine("24-03-18,10:15:02,7"); err == nil {
		t.Error("expected error for zero pairs")
	}
}

func TestParseChannelsLine_NonNumericState(t *testing.T) {
	_, err := ParseChannelsLine("24-03-18,10:15:02,7,V-1,ON,V-2,0")
	if err == nil {
		t.Fatal("expected error for a non-numeric valve state")
	}
	var mlErr *MalformedLineError
	if !errors.As(err, &mlErr) {
		t.Fatalf("expected MalformedLineError, got %T: %v", err, err)
	}
	if !strings.Contains(mlErr.Reason, "ON") {
		t.Errorf("error should cite the offending field, got %q", mlErr.Reason)
	}
}

func TestParseMaxigaugeLine(t *testing.T) {
	values, err := ParseMaxigaugeLine("d1,t1,CH1,A,OK,2.27E-6,0,0,CH2,B,OK,1.5E-3,0,0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(values) != 2 {
		t.Fatalf("expected 2 gauges, got %d", len(values))
	}
	if !floatEq(values["maxigauge_ch1_pressure_mbar"], 2.27e-6) {
		t.Errorf("ch1 = %v, want 2.27e-6", values["maxigauge_ch1_pressure_mbar"])
	}
	if !floatEq(values["maxigauge_ch2_pressure_mbar"], 1.5e-3) {
		t.Errorf("ch2 = %v, want 1.5e-3", values["maxigauge_ch2_pressure_mbar"])
	}
}

func TestParseMaxigaugeLine_Malformed(t *testing.T) {
	// Fewer than six fields after date and time: no complete block
	if _, err := ParseMaxigaugeLine("d1,t1,CH1,A,OK"); err == nil {
		t.Error("expected error for incomplete block")
	}
}

func TestSanitizeName(t *testing.T) {
	cases := map[string]string{
		"V-1 ":       "V_1_",
		"turbo1":     "turbo1",
		"scroll 2":   "scroll_2",
		"he3/pump":   "he3_pump",
		"already_ok": "already_ok",
	}
	for in, want := range cases {
		if got := SanitizeName(in); got != want {
			t.Errorf("SanitizeName(%q) = %q, want %q", in, got, want)
		}
	}
}
