package network

import (
	"fmt"
	"time"

	"github.com/showwin/speedtest-go/speedtest"
	log "github.com/sirupsen/logrus"
)

// ServerInfo describes the test server selected for a run.
type ServerInfo struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Sponsor    string  `json:"sponsor"`
	Country    string  `json:"country"`
	Host       string  `json:"host"`
	Distance   float64 `json:"distance_km"`
	ISP        string  `json:"isp,omitempty"`
	ExternalIP string  `json:"external_ip,omitempty"`
}

// Label returns a short human-readable description of the server.
func (s *ServerInfo) Label() string {
	return fmt.Sprintf("%s (%s) - %s", s.Name, s.Country, s.Sponsor)
}

// Client wraps the speedtest.net client library behind the narrow
// surface the sampler drives. Connect must succeed before any of the
// measurement calls are used.
type Client struct {
	st     *speedtest.Speedtest
	target *speedtest.Server
}

func NewClient() *Client {
	return &Client{st: speedtest.New()}
}

// Connect fetches the user configuration and the server list, then
// selects the test server. serverID 0 selects the lowest-latency
// server; a positive ID requests that specific server.
func (c *Client) Connect(serverID int) (*ServerInfo, error) {
	user, err := c.st.FetchUserInfo()
	if err != nil {
		return nil, NewConfigError(err)
	}
	log.Debugf("Client: %s (%s)", user.IP, user.Isp)

	serverList, err := c.st.FetchServers()
	if err != nil {
		return nil, NewServerListError(err)
	}
	if len(serverList) == 0 {
		return nil, ErrNoMatchedServers
	}

	var ids []int
	if serverID > 0 {
		ids = append(ids, serverID)
	}
	targets, err := serverList.FindServer(ids)
	if err != nil || len(targets) == 0 {
		return nil, ErrNoMatchedServers
	}
	c.target = targets[0]

	log.Debugf("Selected server %s: %s (%s) - %s [%.2f km]",
		c.target.ID, c.target.Name, c.target.Country, c.target.Sponsor, c.target.Distance)

	return &ServerInfo{
		ID:         c.target.ID,
		Name:       c.target.Name,
		Sponsor:    c.target.Sponsor,
		Country:    c.target.Country,
		Host:       c.target.Host,
		Distance:   c.target.Distance,
		ISP:        user.Isp,
		ExternalIP: user.IP,
	}, nil
}

// Ping runs a latency test against the selected server and returns the
// round trip time in milliseconds.
func (c *Client) Ping() (float64, error) {
	if c.target == nil {
		return 0, fmt.Errorf("no server selected")
	}
	if err := c.target.PingTest(nil); err != nil {
		return 0, NewMeasurementError("ping", err)
	}
	return float64(c.target.Latency) / float64(time.Millisecond), nil
}

// Download measures download throughput and returns bits per second.
// The library reports bytes per second.
func (c *Client) Download() (float64, error) {
	if c.target == nil {
		return 0, fmt.Errorf("no server selected")
	}
	if err := c.target.DownloadTest(); err != nil {
		return 0, NewMeasurementError("download", err)
	}
	return float64(c.target.DLSpeed) * 8, nil
}

// Upload measures upload throughput and returns bits per second.
func (c *Client) Upload() (float64, error) {
	if c.target == nil {
		return 0, fmt.Errorf("no server selected")
	}
	if err := c.target.UploadTest(); err != nil {
		return 0, NewMeasurementError("upload", err)
	}
	return float64(c.target.ULSpeed) * 8, nil
}
