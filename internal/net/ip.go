package net

import (
	"fmt"
	"net"

	"SageDraw/internal/logging"
)

// GetOutgoingIP finds the preferred local IP address to put in share links.
func GetOutgoingIP() (string, error) {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		// No route to the internet: fall back to the local interfaces.
		return getLocalIPFallback()
	}
	defer conn.Close()

	localAddr := conn.LocalAddr().(*net.UDPAddr)
	return localAddr.IP.String(), nil
}

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
	logging.L().Warn("[NET] no suitable local IP found, share link uses loopback")
	return "127.0.0.1", nil
}

// ShareLink is the URL other devices on the LAN open to draw.
func ShareLink(port int) string {
	ip, err := GetOutgoingIP()
	if err != nil {
		ip = "127.0.0.1"
	}
	return fmt.Sprintf("http://%s:%d/", ip, port)
}
