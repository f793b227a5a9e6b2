package net

import (
	"fmt"
	"log"
	"net"
	"strings"
)

// Scheme prefixes share links handed to viewers.
const Scheme = "vectorboard://"

// GetOutgoingIP finds the preferred local IP address for the host to share.
func GetOutgoingIP() (string, error) {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		// No route out; fall back to the interfaces.
		return getLocalIPFallback()
	}
	defer conn.Close()

	localAddr := conn.LocalAddr().(*net.UDPAddr)
	return localAddr.IP.String(), nil
}

// ShareLink returns the viewer link for a hub on ip:port.
func ShareLink(ip string, port int) string {
	return fmt.Sprintf("%s%s:%d", Scheme, ip, port)
}

// DialURL turns a share link or a bare host:port into the websocket URL of
// the hub.
func DialURL(link string) (string, error) {
	addr := strings.TrimSuffix(strings.TrimPrefix(link, Scheme), "/")
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return "", fmt.Errorf("invalid board address %q: %w", link, err)
	}
	return "ws://" + addr + Path, nil
}

// getLocalIPFallback picks the first IPv4 address of an interface that is up
// and not loopback, for networks without a default route.
func getLocalIPFallback() (string, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return "", fmt.Errorf("list interfaces: %w", err)
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, a := range addrs {
			if ipnet, ok := a.(*net.IPNet); ok && ipnet.IP.To4() != nil {
				return ipnet.IP.String(), nil
			}
		}
	}
	log.Println("No suitable local IP found, share link points at loopback")
	return "127.0.0.1", nil
}
