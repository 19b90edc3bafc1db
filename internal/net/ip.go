package net

import (
	"fmt"
	"net"
	"strconv"

	"MeetBoard/internal/logger"
)

// GetOutgoingIP finds the preferred local IP address for the host to share.
func GetOutgoingIP() (string, error) {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		// No route out; check local interfaces instead.
		return getLocalIPFallback()
	}
	defer conn.Close()

	localAddr := conn.LocalAddr().(*net.UDPAddr)
	return localAddr.IP.String(), nil
}

// getLocalIPFallback is used on networks without internet access.
func getLocalIPFallback() (string, error) {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "", err
	}
	for _, address := range addrs {
		if ipnet, ok := address.(*net.IPNet); ok && !ipnet.IP.IsLoopback() {
			if ipnet.IP.To4() != nil {
				return ipnet.IP.String(), nil
			}
		}
	}
	logger.WarnTagf("net", "No suitable local IP found, share link will use loopback")
	return "127.0.0.1", nil
}

// MirrorURL is the websocket address viewers dial.
func MirrorURL(host string, port int) string {
	return fmt.Sprintf("ws://%s/ws", net.JoinHostPort(host, strconv.Itoa(port)))
}

// PortOf extracts the numeric port from a listen address such as ":8888".
func PortOf(addr string) (int, error) {
	_, p, err := net.SplitHostPort(addr)
	if err != nil {
		return 0, err
	}
	port, err := strconv.Atoi(p)
	if err != nil {
		return 0, fmt.Errorf("invalid port in %q: %w", addr, err)
	}
	return port, nil
}

// ShareURL builds the link a host can open for a mirror listening on addr.
func ShareURL(addr string) (string, error) {
	port, err := PortOf(addr)
	if err != nil {
		return "", err
	}
	ip, err := GetOutgoingIP()
	if err != nil {
		return "", err
	}
	return MirrorURL(ip, port), nil
}
