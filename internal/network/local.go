package network

import (
	"net"
	"os"
	"strings"
)

// Interface is a summarized local network interface.
type Interface struct {
	Name string
	Addr string
	MTU  int
	Kind string // "ethernet", "wifi", "vpn", "other"
}

// LocalInterfaces lists the up, non-loopback interfaces that carry an
// IPv4 address.
func LocalInterfaces() []Interface {
	var result []Interface

	ifaces, err := net.Interfaces()
	if err != nil {
		return result
	}

	for _, iface := range ifaces {
		if iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		if iface.Flags&net.FlagUp == 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil || len(addrs) == 0 {
			continue
		}

		var ipAddr string
		for _, addr := range addrs {
			if ipnet, ok := addr.(*net.IPNet); ok {
				if ipnet.IP.To4() != nil && !ipnet.IP.IsLoopback() {
					ipAddr = ipnet.IP.String()
					break
				}
			}
		}
		if ipAddr == "" {
			continue
		}

		result = append(result, Interface{
			Name: iface.Name,
			Addr: ipAddr,
			MTU:  iface.MTU,
			Kind: classifyInterface(iface.Name),
		})
	}

	return result
}

// classifyInterface buckets an interface by its OS naming convention.
// VPN patterns are checked first: "utun" would otherwise match the
// macOS "en" prefix rules.
func classifyInterface(name string) string {
	n := strings.ToLower(name)

	for _, vpn := range []string{"tun", "tap", "wg", "wireguard", "ppp", "vpn", "tailscale", "zerotier"} {
		if strings.Contains(n, vpn) {
			return "vpn"
		}
	}

	if strings.HasPrefix(n, "wlan") ||
		strings.HasPrefix(n, "wlp") ||
		strings.HasPrefix(n, "wifi") ||
		strings.Contains(n, "wireless") {
		return "wifi"
	}

	if strings.HasPrefix(n, "eth") ||
		strings.HasPrefix(n, "enp") ||
		strings.HasPrefix(n, "eno") ||
		strings.HasPrefix(n, "ens") ||
		strings.HasPrefix(n, "en") {
		return "ethernet"
	}

	return "other"
}

// VPNActive reports whether an up interface looks like a VPN endpoint,
// along with the interface name. Measurements through a VPN reflect
// the VPN egress, not the local uplink.
func VPNActive() (bool, string) {
	for _, iface := range LocalInterfaces() {
		if iface.Kind == "vpn" {
			return true, iface.Name
		}
	}
	return false, ""
}

// ProxyConfigured returns the proxy URL configured via the environment,
// or an empty string.
func ProxyConfigured() string {
	for _, key := range []string{"HTTPS_PROXY", "https_proxy", "HTTP_PROXY", "http_proxy"} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}
