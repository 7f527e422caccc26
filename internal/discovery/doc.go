// Package discovery advertises and finds accordion state sync sessions on the
// local network using multicast DNS.
//
// A process started with "accordion serve --advertise" registers an
// "_accordion._tcp" service whose TXT record carries the WebSocket path, the
// build version, the config file name and whether TLS is on. "accordion
// discover" browses for the same service type and lists what answers.
//
// # Usage Example
//
//	adv, err := discovery.Advertise(discovery.Advertisement{Port: 7420})
//	if err != nil {
//	    return err
//	}
//	defer adv.Shutdown()
//
//	sessions, err := discovery.NewScanner().Scan(ctx)
//	for _, s := range sessions {
//	    fmt.Println(s.Instance, s.URL())
//	}
//
// # Network Requirements
//
// - Requires multicast support on the network interface
// - Peers must be on the same local network segment
// - Firewall must allow mDNS (UDP port 5353)
package discovery
