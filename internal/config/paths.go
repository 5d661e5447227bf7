package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Target describes the dependency-cache directory being hunted and the
// manifest that marks the project owning it.
type Target struct {
	// DirName is the exact directory name to match.
	DirName string

	// Manifest is the file expected next to DirName in the project root.
	Manifest string

	// NameField is the manifest key holding the declared project name.
	NameField string
}

// NodeModules is the npm/yarn/pnpm dependency cache.
var NodeModules = Target{
	DirName:   "node_modules",
	Manifest:  "package.json",
	NameField: "name",
}

// systemDrive returns the system drive root (e.g., C:\).
// Falls back to C:\ only if %SYSTEMDRIVE% is not set.
func systemDrive() string {
	if d := os.Getenv("SYSTEMDRIVE"); d != "" {
		return d + `\`
	}
	return `C:\`
}

// winDir returns the Windows directory (e.g., C:\Windows).
func winDir() string {
	if w := os.Getenv("WINDIR"); w != "" {
		return w
	}
	return `C:\Windows`
}

// DefaultExcludes returns doublestar patterns, matched against slash-separated
// absolute paths, for trees the walker never enters.
func DefaultExcludes() []string {
	switch runtime.GOOS {
	case "windows":
		return []string{
			"*:/$Recycle.Bin",
			"*:/System Volume Information",
			"*:/Windows",
			"*:/Recovery",
		}
	case "darwin":
		return []string{
			"/dev",
			"/private/var/vm",
			"/System/Volumes",
			"/Volumes/*/.Spotlight-V100",
			"**/.Trash",
		}
	default:
		return []string{
			"/proc",
			"/sys",
			"/dev",
			"/run",
			"/snap",
			"**/lost+found",
		}
	}
}

// NeverDeletePaths returns paths that must never be removed no matter what
// the scan produced.
func NeverDeletePaths() []string {
	home, _ := os.UserHomeDir()

	if runtime.GOOS == "windows" {
		w := winDir()
		sd := systemDrive()
		return compact([]string{
			sd,
			w,
			filepath.Join(w, "System32"),
			filepath.Join(w, "SysWOW64"),
			filepath.Join(sd, "Program Files"),
			filepath.Join(sd, "Program Files (x86)"),
			filepath.Join(sd, "ProgramData"),
			filepath.Join(sd, "Users"),
			home,
		})
	}

	return compact([]string{
		"/",
		"/bin",
		"/boot",
		"/etc",
		"/home",
		"/lib",
		"/opt",
		"/root",
		"/sbin",
		"/usr",
		"/usr/lib",
		"/usr/local",
		"/usr/local/lib",
		"/var",
		"/Applications",
		"/Library",
		"/System",
		"/Users",
		home,
	})
}

func compact(paths []string) []string {
	out := paths[:0]
	for _, p := range paths {
		if p != "" {
			out = append(out, filepath.Clean(p))
		}
	}
	return out
}
