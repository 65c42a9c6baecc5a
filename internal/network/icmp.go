package network

import (
	"fmt"
	"net"
	"os"
	"time"

	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
)

// ICMPEcho sends a single ICMP echo request to host and waits for the
// reply. Requires raw socket privileges; callers should treat an error
// as "probe unavailable" and fall back to TCP probing.
func ICMPEcho(host string, timeout time.Duration) (time.Duration, error) {
	dst, err := net.ResolveIPAddr("ip4", host)
	if err != nil {
		return 0, fmt.Errorf("resolve failed: %v", err)
	}

	c, err := net.ListenPacket("ip4:icmp", "0.0.0.0")
	if err != nil {
		return 0, fmt.Errorf("raw socket unavailable: %v", err)
	}
	defer c.Close()

	p := ipv4.NewPacketConn(c)
	if err := p.SetTTL(64); err != nil {
		return 0, fmt.Errorf("failed to set TTL: %v", err)
	}

	wm := icmp.Message{
		Type: ipv4.ICMPTypeEcho, Code: 0,
		Body: &icmp.Echo{
			ID: os.Getpid() & 0xffff, Seq: 1,
			Data: []byte("InternetSpeedTest"),
		},
	}
	wb, err := wm.Marshal(nil)
	if err != nil {
		return 0, err
	}

	start := time.Now()
	if _, err := p.WriteTo(wb, nil, dst); err != nil {
		return 0, fmt.Errorf("send failed: %v", err)
	}

	deadline := time.Now().Add(timeout)
	rb := make([]byte, 1500)
	for {
		c.SetReadDeadline(deadline)
		n, peer, err := c.ReadFrom(rb)
		if err != nil {
			return 0, fmt.Errorf("no reply: %v", err)
		}
		rtt := time.Since(start)

		rm, err := icmp.ParseMessage(ipv4.ICMPTypeEchoReply.Protocol(), rb[:n])
		if err != nil {
			continue
		}
		// Other traffic can land on the raw socket; only accept the
		// echo reply from the probed host.
		if rm.Type != ipv4.ICMPTypeEchoReply {
			continue
		}
		if peer != nil && peer.String() != dst.String() {
			continue
		}
		return rtt, nil
	}
}
