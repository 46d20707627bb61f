package collector

import (
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"

	constants "cryopush/config"
	"cryopush/internal/logger"
)

// HostDiagnostics samples the machine running the exporter: fill level of
// the volume the instrument logs live on, and host uptime. The control
// software quietly filling its disk is the single most common way this
// pipeline dies, so the exporter reports it alongside the fridge readings.
func HostDiagnostics(logsRoot string) map[string]float64 {
	samples := make(map[string]float64, 2)

	usage, err := disk.Usage(logsRoot)
	if err != nil {
		logger.Warning("failed to read disk usage for %s: %v", logsRoot, err)
	} else {
		samples[constants.SELF_METRIC_LOGS_VOLUME_USED] = usage.UsedPercent
	}

	uptime, err := host.Uptime()
	if err != nil {
		logger.Warning("failed to read host uptime: %v", err)
	} else {
		samples[constants.SELF_METRIC_HOST_UPTIME] = float64(uptime)
	}

	return samples
}
