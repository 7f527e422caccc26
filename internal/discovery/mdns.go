package discovery

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"

	"github.com/muurk/accordion/internal/logging"
)

const (
	// ServiceType is the mDNS service type accordion state sync servers advertise
	ServiceType = "_accordion._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// DefaultScanTimeout is the default timeout for session discovery
	DefaultScanTimeout = 5 * time.Second

	// DefaultPath is assumed when a session omits the path TXT field
	DefaultPath = "/ws"

	instancePrefix = "accordion-"
)

var unsafeInstanceChars = regexp.MustCompile(`[^A-Za-z0-9-]+`)

// InstanceName derives an instance name from a hostname, e.g. "accordion-laptop".
func InstanceName(hostname string) string {
	hostname = strings.TrimSuffix(hostname, ".local")
	name := strings.Trim(unsafeInstanceChars.ReplaceAllString(hostname, "-"), "-")
	if name == "" {
		name = "host"
	}
	return instancePrefix + strings.ToLower(name)
}

// Advertisement describes a running state sync server.
type Advertisement struct {
	Instance string // Defaults to InstanceName(os.Hostname())
	Port     int
	Path     string
	Version  string
	Config   string
	TLS      bool
}

// Text returns the TXT record fields for the advertisement.
func (a Advertisement) Text() []string {
	path := a.Path
	if path == "" {
		path = DefaultPath
	}
	txt := []string{"path=" + path}
	if a.Version != "" {
		txt = append(txt, "version="+a.Version)
	}
	if a.Config != "" {
		txt = append(txt, "config="+a.Config)
	}
	if a.TLS {
		txt = append(txt, "tls=true")
	}
	return txt
}

// Advertiser keeps a registration alive until Shutdown.
type Advertiser struct {
	server *zeroconf.Server
}

// Advertise registers a on all multicast interfaces.
func Advertise(a Advertisement) (*Advertiser, error) {
	if a.Instance == "" {
		host, err := os.Hostname()
		if err != nil {
			host = "host"
		}
		a.Instance = InstanceName(host)
	}

	server, err := zeroconf.Register(a.Instance, ServiceType, ServiceDomain, a.Port, a.Text(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to register mDNS service: %w", err)
	}

	logging.Info("Advertising state sync session",
		zap.String("instance", a.Instance),
		zap.String("service", ServiceType),
		zap.Int("port", a.Port),
	)
	return &Advertiser{server: server}, nil
}

// Shutdown withdraws the registration.
func (a *Advertiser) Shutdown() {
	if a == nil || a.server == nil {
		return
	}
	a.server.Shutdown()
}

// Scanner handles mDNS session discovery
type Scanner struct {
	// Timeout is the maximum time to wait for session discovery
	Timeout time.Duration
}

// NewScanner creates a new mDNS scanner with default settings
func NewScanner() *Scanner {
	return &Scanner{
		Timeout: DefaultScanTimeout,
	}
}

// Scan discovers all accordion sessions on the local network until the
// timeout elapses or ctx is cancelled.
func (s *Scanner) Scan(ctx context.Context) ([]*Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	var (
		mu       sync.Mutex
		sessions []*Session
		seen     = make(map[string]bool)
		done     = make(chan struct{})
	)
	go func() {
		defer close(done)
		for entry := range entries {
			session := s.parseServiceEntry(entry)
			if session == nil {
				continue
			}
			mu.Lock()
			if !seen[session.Instance] {
				seen[session.Instance] = true
				sessions = append(sessions, session)
			}
			mu.Unlock()
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	<-ctx.Done()
	select {
	case <-done:
	case <-time.After(100 * time.Millisecond):
	}

	mu.Lock()
	defer mu.Unlock()
	return append([]*Session(nil), sessions...), nil
}

// parseServiceEntry converts a zeroconf service entry to a Session.
// Returns nil if the entry has no usable address.
func (s *Scanner) parseServiceEntry(entry *zeroconf.ServiceEntry) *Session {
	if entry == nil || entry.Instance == "" || entry.Port == 0 {
		return nil
	}

	var ip string
	if len(entry.AddrIPv4) > 0 {
		ip = entry.AddrIPv4[0].String()
	}
	if ip == "" && len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}
	if ip == "" {
		return nil
	}

	metadata := make(map[string]string)
	for _, txt := range entry.Text {
		key, value, _ := strings.Cut(txt, "=")
		metadata[key] = value
	}

	return &Session{
		Instance:     entry.Instance,
		Hostname:     entry.HostName,
		IP:           ip,
		Port:         entry.Port,
		Metadata:     metadata,
		DiscoveredAt: time.Now(),
	}
}

func isIPv6(host string) bool {
	return strings.Contains(host, ":")
}

// QuickScan performs a fast scan with a 2-second timeout
func QuickScan(ctx context.Context) ([]*Session, error) {
	scanner := NewScanner()
	scanner.Timeout = 2 * time.Second
	return scanner.Scan(ctx)
}
