package api

import (
	"net/http"
	"time"

	apijson "github.com/eathindhar/murf-voice-agents/json"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// health reports provider configuration and host load. The backup
// synthesizer is optional, so a missing one never degrades the status.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	providers := make(map[string]apijson.ProviderHealth, len(h.statuses))
	for _, s := range h.statuses {
		providers[s.Role] = apijson.ProviderHealth{Name: s.Name, Configured: s.Configured}
		if !s.Configured && s.Role != RoleBackupTTS {
			status = "degraded"
		}
	}

	JSON(w, http.StatusOK, apijson.HealthResponse{
		Status:        status,
		Providers:     providers,
		System:        systemHealth(),
		UptimeSeconds: time.Since(h.started).Seconds(),
	})
}

// systemHealth samples host CPU and memory usage. Sampling failures
// leave the affected figure at zero rather than failing the endpoint.
func systemHealth() apijson.SystemHealth {
	var sys apijson.SystemHealth
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		sys.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		sys.MemoryPercent = vm.UsedPercent
	}
	return sys
}
