package discovery

import (
	"fmt"
	"time"
)

// Session is an accordion state sync server found on the network.
type Session struct {
	// Instance is the advertised instance name (e.g., "accordion-laptop")
	Instance string

	// Hostname is the mDNS hostname (e.g., "laptop.local.")
	Hostname string

	// IP is the preferred address, IPv4 when available
	IP string

	// Port is the WebSocket port
	Port int

	// Metadata contains the TXT record fields.
	// Common fields: "path=/ws", "version=1.2.0", "config=accordion.yaml", "tls=true"
	Metadata map[string]string

	// DiscoveredAt is when the session was seen
	DiscoveredAt time.Time
}

// String returns a human-readable representation of the session
func (s *Session) String() string {
	return fmt.Sprintf("%s (%s) at %s:%d", s.Instance, s.Hostname, s.IP, s.Port)
}

// Path returns the advertised WebSocket path, or DefaultPath.
func (s *Session) Path() string {
	if p := s.GetMetadata("path"); p != "" {
		return p
	}
	return DefaultPath
}

// URL returns the WebSocket URL clients dial.
func (s *Session) URL() string {
	scheme := "ws"
	if s.GetMetadata("tls") == "true" {
		scheme = "wss"
	}
	host := s.IP
	if isIPv6(host) {
		host = "[" + host + "]"
	}
	return fmt.Sprintf("%s://%s:%d%s", scheme, host, s.Port, s.Path())
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (s *Session) GetMetadata(key string) string {
	if s.Metadata == nil {
		return ""
	}
	return s.Metadata[key]
}
