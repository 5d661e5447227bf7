package core

import (
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
)

// HostString returns a human-readable description of the host OS.
// Examples: "ubuntu 24.04 (x86_64)", "darwin 14.5 (arm64)"
func HostString() string {
	info, err := host.Info()
	if err != nil || info.Platform == "" {
		return runtime.GOOS + "/" + runtime.GOARCH
	}
	return fmt.Sprintf("%s %s (%s)", info.Platform, info.PlatformVersion, info.KernelArch)
}

// DiskSpace is the capacity of the volume holding a path.
type DiskSpace struct {
	Path  string
	Free  uint64
	Total uint64
}

// FreeSpace reports free and total bytes for the volume holding path.
func FreeSpace(path string) (DiskSpace, error) {
	usage, err := disk.Usage(path)
	if err != nil {
		return DiskSpace{}, fmt.Errorf("disk usage %s: %w", path, err)
	}
	return DiskSpace{Path: usage.Path, Free: usage.Free, Total: usage.Total}, nil
}
