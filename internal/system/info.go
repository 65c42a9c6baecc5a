package system

import (
	"fmt"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// Info is a snapshot of the host the measurements run on.
type Info struct {
	Hostname   string
	OS         string
	Platform   string
	Arch       string
	Uptime     time.Duration
	CPUModel   string
	CPUCores   int
	MemTotal   uint64
	MemUsed    uint64
	MemUsedPct float64
}

// Collect gathers host facts via gopsutil. No load sampling happens
// here; a diagnostic snapshot should not block.
func Collect() (*Info, error) {
	h, err := host.Info()
	if err != nil {
		return nil, fmt.Errorf("failed to get host info: %w", err)
	}

	vm, err := mem.VirtualMemory()
	if err != nil {
		return nil, fmt.Errorf("failed to get memory info: %w", err)
	}

	cpuModel := "Unknown"
	if cpuInfo, err := cpu.Info(); err == nil && len(cpuInfo) > 0 {
		cpuModel = cpuInfo[0].ModelName
	}

	return &Info{
		Hostname:   h.Hostname,
		OS:         h.OS,
		Platform:   fmt.Sprintf("%s %s", h.Platform, h.PlatformVersion),
		Arch:       h.KernelArch,
		Uptime:     time.Duration(h.Uptime) * time.Second,
		CPUModel:   cpuModel,
		CPUCores:   runtime.NumCPU(),
		MemTotal:   vm.Total,
		MemUsed:    vm.Used,
		MemUsedPct: vm.UsedPercent,
	}, nil
}

// FormatBytes renders a byte count in binary units.
func FormatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}
