//go:build windows

package config

import (
	"os"
	"strings"

	"github.com/yusufpapurcu/wmi"
)

// win32LogicalDisk mirrors the fields of Win32_LogicalDisk we query.
type win32LogicalDisk struct {
	DeviceID  string
	DriveType uint32
}

// driveTypeLocalDisk is Win32_LogicalDisk.DriveType for fixed local disks.
const driveTypeLocalDisk = 3

// ScanRoots returns the root of every local fixed drive.
func ScanRoots() []string {
	var disks []win32LogicalDisk
	err := wmi.Query("SELECT DeviceID, DriveType FROM Win32_LogicalDisk", &disks)
	if err == nil {
		var roots []string
		for _, d := range disks {
			if d.DriveType != driveTypeLocalDisk || d.DeviceID == "" {
				continue
			}
			roots = append(roots, strings.ToUpper(d.DeviceID)+`\`)
		}
		if len(roots) > 0 {
			return roots
		}
	}
	return probeDrives()
}

// probeDrives checks A: through Z: when WMI is unavailable.
func probeDrives() []string {
	var roots []string
	for c := 'A'; c <= 'Z'; c++ {
		root := string(c) + `:\`
		info, err := os.Stat(root)
		if err != nil || !info.IsDir() {
			continue
		}
		roots = append(roots, root)
	}
	if len(roots) == 0 {
		roots = append(roots, systemDrive())
	}
	return roots
}
