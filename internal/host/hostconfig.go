// Package host describes the machine a sweep runs on and which kernel dirty
// page tracking facilities it appears to offer.
package host

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"dirtybench/internal/logging"

	"github.com/sirupsen/logrus"
)

// HostConfig contains host system information
// This is initialized once per process and logged with every sweep
type HostConfig struct {
	Hostname      string
	OSInfo        string
	KernelVersion string

	CPUVendor    string
	CPUModel     string
	TotalThreads int
	NumSockets   int
	PageSize     int

	Tracking TrackingSupport
}

// TrackingSupport records what the kernel exposes for each tracking strategy.
// Detection is best effort; the measurement binary has the final word.
type TrackingSupport struct {
	// /proc/self/clear_refs is present, needed to reset soft-dirty bits
	SoftDirty bool
	// the userfaultfd device or its sysctl is present
	Userfaultfd bool
	// vm.unprivileged_userfaultfd is 1
	UnprivilegedUserfaultfd bool
}

var (
	globalHostConfig *HostConfig
	hostConfigErr    error
	hostConfigOnce   sync.Once
)

// GetHostConfig returns the host configuration of the running machine.
// It is detected on first call.
func GetHostConfig() (*HostConfig, error) {
	hostConfigOnce.Do(func() {
		globalHostConfig, hostConfigErr = Detect("/")
	})
	return globalHostConfig, hostConfigErr
}

// Detect reads host information from the file system rooted at root.
func Detect(root string) (*HostConfig, error) {
	config := &HostConfig{
		OSInfo:       runtime.GOOS + "/" + runtime.GOARCH,
		TotalThreads: runtime.NumCPU(),
		PageSize:     os.Getpagesize(),
	}

	hostname, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("failed to get hostname: %w", err)
	}
	config.Hostname = hostname

	config.KernelVersion = "unknown"
	if data, err := os.ReadFile(filepath.Join(root, "proc/version")); err == nil {
		if version := strings.Fields(string(data)); len(version) >= 3 {
			config.KernelVersion = version[2]
		}
	}

	config.initCPUInfo(filepath.Join(root, "proc/cpuinfo"))
	config.Tracking = detectTracking(root)

	return config, nil
}

func (hc *HostConfig) initCPUInfo(path string) {
	hc.CPUVendor = "unknown"
	hc.CPUModel = "unknown"
	hc.NumSockets = 1

	file, err := os.Open(path)
	if err != nil {
		return
	}
	defer file.Close()

	physicalIDs := make(map[string]bool)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "vendor_id":
			if hc.CPUVendor == "unknown" {
				hc.CPUVendor = value
			}
		case "model name":
			if hc.CPUModel == "unknown" {
				hc.CPUModel = value
			}
		case "physical id":
			physicalIDs[value] = true
		}
	}

	if len(physicalIDs) > 0 {
		hc.NumSockets = len(physicalIDs)
	}
}

func detectTracking(root string) TrackingSupport {
	var t TrackingSupport

	if _, err := os.Stat(filepath.Join(root, "proc/self/clear_refs")); err == nil {
		t.SoftDirty = true
	}

	if _, err := os.Stat(filepath.Join(root, "dev/userfaultfd")); err == nil {
		t.Userfaultfd = true
	}
	if data, err := os.ReadFile(filepath.Join(root, "proc/sys/vm/unprivileged_userfaultfd")); err == nil {
		t.Userfaultfd = true
		t.UnprivilegedUserfaultfd = strings.TrimSpace(string(data)) == "1"
	}

	return t
}

func (hc *HostConfig) Fields() logrus.Fields {
	return logrus.Fields{
		"hostname":    hc.Hostname,
		"kernel":      hc.KernelVersion,
		"cpu_model":   hc.CPUModel,
		"threads":     hc.TotalThreads,
		"sockets":     hc.NumSockets,
		"page_size":   hc.PageSize,
		"soft_dirty":  hc.Tracking.SoftDirty,
		"userfaultfd": hc.Tracking.Userfaultfd,
	}
}

// LogHostConfig logs the host description and warns about missing tracking
// facilities.
func LogHostConfig(hc *HostConfig) {
	logger := logging.GetLogger()
	logger.WithFields(hc.Fields()).Info("Host configuration")

	if !hc.Tracking.Userfaultfd {
		logger.Warn("userfaultfd not detected, the Uffd strategy will likely fail")
	} else if !hc.Tracking.UnprivilegedUserfaultfd && os.Geteuid() != 0 {
		logger.Warn("vm.unprivileged_userfaultfd is off and not running as root")
	}
	if !hc.Tracking.SoftDirty {
		logger.Warn("/proc/self/clear_refs not found, the SoftDirty strategy will likely fail")
	}
}
