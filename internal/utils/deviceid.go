package utils

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

var ErrNoFingerprint = errors.New("no hardware fingerprint available")

// DeviceFingerprint returns a stable hardware identifier for this machine.
// It keys the local session file to the device it was written on.
func DeviceFingerprint() (string, error) {
	switch runtime.GOOS {
	case "darwin":
		return macOSUUID()
	case "linux":
		return linuxUUID()
	case "windows":
		return windowsUUID()
	default:
		return "", ErrNoFingerprint
	}
}

func macOSUUID() (string, error) {
	out, err := exec.Command("ioreg", "-rd1", "-c", "IOPlatformExpertDevice").Output()
	if err != nil {
		return "", err
	}
	for _, line := range strings.Split(string(out), "\n") {
		if strings.Contains(line, "IOPlatformUUID") {
			parts := strings.Split(line, "\"")
			if len(parts) >= 4 {
				return parts[3], nil
			}
		}
	}
	return "", ErrNoFingerprint
}

func linuxUUID() (string, error) {
	for _, path := range []string{"/etc/machine-id", "/var/lib/dbus/machine-id", "/sys/class/dmi/id/product_uuid"} {
		b, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if id := strings.TrimSpace(string(b)); id != "" {
			return id, nil
		}
	}
	cpuinfo, err := os.ReadFile("/proc/cpuinfo")
	if err == nil {
		for _, line := range strings.Split(string(cpuinfo), "\n") {
			if !strings.HasPrefix(line, "Serial") {
				continue
			}
			if parts := strings.SplitN(line, ":", 2); len(parts) == 2 {
				if id := strings.TrimSpace(parts[1]); id != "" {
					return id, nil
				}
			}
		}
	}
	return "", ErrNoFingerprint
}

func windowsUUID() (string, error) {
	out, err := exec.Command("wmic", "csproduct", "get", "UUID").Output()
	if err != nil {
		return "", err
	}
	for _, line := range bytes.Split(out, []byte("\n")) {
		s := strings.TrimSpace(string(line))
		if s != "" && !strings.EqualFold(s, "UUID") {
			return s, nil
		}
	}
	return "", ErrNoFingerprint
}
