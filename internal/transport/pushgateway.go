package transport

import (
	"context"
	"fmt"
	"regexp"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
	"github.com/prometheus/common/model"

	constants "cryopush/config"
	"cryopush/internal/catalog"
	"cryopush/internal/collector"
	"cryopush/internal/logger"
)

// PushgatewayPusher replaces the job/instance group on a Prometheus
// Pushgateway with the current cycle's gauges.
type PushgatewayPusher struct {
	url string
	job string
}

// NewPushgateway creates a Pushgateway pusher
func NewPushgateway(url, job string) (*PushgatewayPusher, error) {
	if url == "" {
		return nil, fmt.Errorf("pushgateway URL is empty")
	}
	if job == "" {
		job = constants.DEFAULT_JOB_NAME
	}
	return &PushgatewayPusher{url: url, job: job}, nil
}

var metricNameInvalidRE = regexp.MustCompile(`[^a-zA-Z0-9_:]`)

// SafeMetricName sanitizes an arbitrary key into a legal Prometheus metric
// name: illegal characters become underscores and a leading digit gets an
// "m_" prefix.
func SafeMetricName(raw string) string {
	name := metricNameInvalidRE.ReplaceAllString(raw, "_")
	if name != "" && name[0] >= '0' && name[0] <= '9' {
		name = "m_" + name
	}
	return name
}

// Push registers one gauge per sample plus the heartbeat gauge in a fresh
// registry and replaces the push group on the gateway. Samples whose names
// cannot be made legal are dropped individually, never the whole cycle.
func (p *PushgatewayPusher) Push(ctx context.Context, result *collector.Result, instance string) error {
	registry := prometheus.NewRegistry()

	// Deterministic registration order makes duplicate-name drops stable
	names := make([]string, 0, len(result.Samples))
	for name := range result.Samples {
		names = append(names, name)
	}
	sort.Strings(names)

	registered := 0
	for _, name := range names {
		safeName := SafeMetricName(name)
		if safeName == "" || !model.IsValidMetricName(model.LabelValue(safeName)) {
			logger.Warning("dropping sample with unusable metric name %q", name)
			continue
		}

		gauge := prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        safeName,
			Help:        catalog.Describe(name),
			ConstLabels: prometheus.Labels{"group": catalog.GroupOf(name)},
		})
		gauge.Set(result.Samples[name])
		if err := registry.Register(gauge); err != nil {
			logger.Warning("failed to register gauge %s: %v", safeName, err)
			continue
		}
		registered++
	}

	heartbeat := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: constants.HEARTBEAT_METRIC,
		Help: constants.HEARTBEAT_HELP,
	})
	heartbeat.SetToCurrentTime()
	if err := registry.Register(heartbeat); err != nil {
		return fmt.Errorf("failed to register heartbeat gauge: %w", err)
	}

	err := push.New(p.url, p.job).
		Grouping("instance", instance).
		Gatherer(registry).
		PushContext(ctx)
	if err != nil {
		return fmt.Errorf("push to %s failed: %w", p.url, err)
	}

	logger.Info("pushed %d metric(s) + heartbeat to %s (job=%s, instance=%s)",
		registered, p.url, p.job, instance)
	return nil
}
