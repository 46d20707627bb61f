package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"cryopush/internal/collector"
)

func TestSafeMetricName(t *testing.T) {
	cases := map[string]string{
		"cpahp_mbar":      "cpahp_mbar",
		"valve V-1":       "valve_V_1",
		"4k flange":       "m_4k_flange",
		"name:with:colon": "name:with:colon",
		"weird.key!":      "weird_key_",
	}
	for raw, want := range cases {
		if got := SafeMetricName(raw); got != want {
			t.Errorf("SafeMetricName(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestPushgatewayPush(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	pusher, err := NewPushgateway(srv.URL, "sensor_data")
	if err != nil {
		t.Fatalf("NewPushgateway: %v", err)
	}

	result := &collector.Result{
		Samples: map[string]float64{
			"cpahp_mbar":   281.5,
			"ch1_t_kelvin": 45.2,
		},
	}
	if err := pusher.Push(context.Background(), result, "fridge-alpha"); err != nil {
		t.Fatalf("Push failed: %v", err)
	}

	if gotMethod != http.MethodPut {
		t.Errorf("expected PUT (replace push group), got %s", gotMethod)
	}
	if gotPath != "/metrics/job/sensor_data/instance/fridge-alpha" {
		t.Errorf("unexpected push path %s", gotPath)
	}
}

func TestPushgatewayPush_EmptySamplesStillPushesHeartbeat(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	pusher, err := NewPushgateway(srv.URL, "sensor_data")
	if err != nil {
		t.Fatalf("NewPushgateway: %v", err)
	}

	result := &collector.Result{Samples: map[string]float64{}}
	if err := pusher.Push(context.Background(), result, "fridge-alpha"); err != nil {
		t.Fatalf("Push failed: %v", err)
	}
	if requests != 1 {
		t.Errorf("expected the heartbeat-only push to reach the gateway, got %d request(s)", requests)
	}
}

func TestPushgatewayPush_GatewayErrorPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	pusher, _ := NewPushgateway(srv.URL, "sensor_data")
	result := &collector.Result{Samples: map[string]float64{"cpahp_mbar": 1}}
	if err := pusher.Push(context.Background(), result, "fridge-alpha"); err == nil {
		t.Error("expected an error when the gateway rejects the push")
	}
}

func TestNewPushgateway_RequiresURL(t *testing.T) {
	if _, err := NewPushgateway("", "job"); err == nil {
		t.Error("expected an error for an empty URL")
	}
}
