package main

import (
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"

	"github.com/rammah83/Internet-Speed-Test/internal/config"
	"github.com/rammah83/Internet-Speed-Test/internal/network"
	"github.com/rammah83/Internet-Speed-Test/internal/system"
)

// runDoctor inspects the local environment for conditions that skew
// speed test results: VPNs, proxies, slow DNS, an unreachable test
// endpoint.
func runDoctor() {
	section := color.New(color.FgCyan, color.Bold)

	section.Println("== System ==")
	if info, err := system.Collect(); err != nil {
		log.Warnf("Could not collect system info: %v", err)
	} else {
		fmt.Printf("Host:    %s (%s, %s)\n", info.Hostname, info.Platform, info.Arch)
		fmt.Printf("CPU:     %s (%d cores)\n", info.CPUModel, info.CPUCores)
		fmt.Printf("Memory:  %s of %s used (%.1f%%)\n",
			system.FormatBytes(info.MemUsed), system.FormatBytes(info.MemTotal), info.MemUsedPct)
		fmt.Printf("Uptime:  %s\n", info.Uptime)
	}
	fmt.Println()

	section.Println("== Interfaces ==")
	ifaces := network.LocalInterfaces()
	if len(ifaces) == 0 {
		fmt.Println("No active interfaces with an IPv4 address found.")
	}
	for _, iface := range ifaces {
		fmt.Printf("%-12s %-10s %-16s MTU %d\n", iface.Name, iface.Kind, iface.Addr, iface.MTU)
	}
	if active, name := network.VPNActive(); active {
		color.Yellow("Warning: VPN interface %s is up, results will reflect the VPN egress", name)
	}
	if proxy := network.ProxyConfigured(); proxy != "" {
		color.Yellow("Warning: proxy configured (%s), measurements may not use it", proxy)
	}
	fmt.Println()

	section.Println("== DNS ==")
	if timing, err := network.MeasureDNS(config.ProbeHost); err != nil {
		color.Red("Resolving %s failed after %.1f ms: %v", config.ProbeHost, timing.Millis, err)
	} else {
		fmt.Printf("Resolved %s in %.1f ms: %s\n",
			timing.Host, timing.Millis, strings.Join(timing.Addresses, ", "))
	}
	fmt.Println()

	section.Println("== Reachability ==")
	count := *probeCount
	if count <= 0 {
		count = config.DefaultProbeCount
	}
	target := net.JoinHostPort(config.ProbeHost, config.ProbePort)
	stats := network.TCPProbe(target, count, config.DefaultProbeTimeout)
	fmt.Printf("TCP %s: %d/%d ok, avg %.1f ms (min %.1f, max %.1f), jitter %.1f ms, loss %.0f%%\n",
		stats.Target, stats.Success, stats.Count,
		stats.AvgMs, stats.MinMs, stats.MaxMs, stats.JitterMs, stats.Loss)

	if rtt, err := network.ICMPEcho(config.ProbeHost, config.ICMPTimeout); err != nil {
		fmt.Printf("ICMP %s: unavailable (%v)\n", config.ProbeHost, err)
	} else {
		fmt.Printf("ICMP %s: %.1f ms\n", config.ProbeHost, float64(rtt)/float64(time.Millisecond))
	}

	if stats.Success == 0 {
		color.Red("No TCP probe reached %s, a speed test from here will fail", target)
		os.Exit(1)
	}
}
