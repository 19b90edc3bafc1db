package net

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/mdns"

	"MeetBoard/internal/logger"
)

const serviceType = "_meetboard._tcp"

// Advertise announces a mirror listening on port. Shut the server down to
// withdraw it.
func Advertise(port int, session string) (*mdns.Server, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("could not get hostname: %w", err)
	}

	info := []string{"MeetBoard", "session=" + session}
	service, err := mdns.NewMDNSService(host, serviceType, "", "", port, nil, info)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	logger.InfoTagf("mdns", "Advertising %s on port %d", serviceType, port)
	return server, nil
}

// Advert is a mirror found on the local network.
type Advert struct {
	Host    string
	URL     string
	Session string
}

// Browse lists the mirrors that answer within timeout.
func Browse(ctx context.Context, timeout time.Duration) ([]Advert, error) {
	entries := make(chan *mdns.ServiceEntry, 8)
	var found []Advert
	done := make(chan struct{})
	go func() {
		defer close(done)
		for e := range entries {
			if e.AddrV4 == nil || e.Port == 0 {
				continue
			}
			found = append(found, advertFromEntry(e.Host, e.AddrV4.String(), e.Port, e.InfoFields))
		}
	}()

	params := mdns.DefaultParams(serviceType)
	params.Entries = entries
	params.Timeout = timeout
	params.DisableIPv6 = true
	err := mdns.QueryContext(ctx, params)
	close(entries)
	<-done
	if err != nil {
		return found, fmt.Errorf("mdns query failed: %w", err)
	}
	return found, nil
}

func advertFromEntry(host, ip string, port int, info []string) Advert {
	a := Advert{Host: strings.TrimSuffix(host, "."), URL: MirrorURL(ip, port)}
	for _, field := range info {
		if v, ok := strings.CutPrefix(field, "session="); ok {
			a.Session = v
		}
	}
	return a
}
