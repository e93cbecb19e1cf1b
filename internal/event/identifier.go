package event

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net"

	"github.com/denisbrodbeck/machineid"
)

var distinctID string

const (
	hashKey    = "xui"
	fallbackID = "unknown"
)

func getDistinctID() string {
	if id, err := machineid.ProtectedID(hashKey); err == nil {
		return id
	}
	if addr, err := hardwareAddr(); err == nil {
		return hashString(addr)
	}
	return fallbackID
}

func hardwareAddr() (string, error) {
	interfaces, err := net.Interfaces()
	if err != nil {
		return "", err
	}
	for _, iface := range interfaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 || len(iface.HardwareAddr) == 0 {
			continue
		}
		return iface.HardwareAddr.String(), nil
	}
	return "", errors.New("no active interface with a hardware address")
}

func hashString(str string) string {
	hash := hmac.New(sha256.New, []byte(hashKey))
	hash.Write([]byte(str))
	return hex.EncodeToString(hash.Sum(nil))
}
