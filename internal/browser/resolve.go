package browser

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/go-rod/rod/lib/launcher"
)

// Probe attempts one executable discovery strategy. A miss is not an error,
// the resolver just moves on to the next probe.
type Probe func() (path string, found bool)

// ResolveExecutable runs probes in order and returns the first hit.
func ResolveExecutable(probes ...Probe) (string, bool) {
	for _, probe := range probes {
		if path, found := probe(); found {
			return path, true
		}
	}
	return "", false
}

// DefaultProbes returns the standard discovery chain: explicit override,
// launcher's own install location, a scan of the cache directory, PATH
// lookup, then fixed OS install locations.
func DefaultProbes(binOverride, cacheDir string) []Probe {
	return []Probe{
		ProbeExplicit(binOverride),
		ProbeLauncherDir(),
		ProbeCacheDir(cacheDir),
		ProbePath(),
		ProbeStandardLocations(),
	}
}

// ProbeExplicit accepts a configured binary path when the file exists.
func ProbeExplicit(path string) Probe {
	return func() (string, bool) {
		if path == "" {
			return "", false
		}
		if _, err := os.Stat(path); err != nil {
			return "", false
		}
		return path, true
	}
}

// ProbeLauncherDir checks the automation library's managed install path
// without triggering a download.
func ProbeLauncherDir() Probe {
	return func() (string, bool) {
		path := launcher.NewBrowser().BinPath()
		if _, err := os.Stat(path); err != nil {
			return "", false
		}
		return path, true
	}
}

// ProbeCacheDir scans a configured cache directory tree for a browser binary.
func ProbeCacheDir(dir string) Probe {
	return func() (string, bool) {
		if dir == "" {
			return "", false
		}
		return scanForExecutable(dir)
	}
}

// ProbePath consults PATH for well-known browser names.
func ProbePath() Probe {
	return func() (string, bool) {
		for _, name := range pathCandidates {
			if path, err := exec.LookPath(name); err == nil {
				return path, true
			}
		}
		return "", false
	}
}

// ProbeStandardLocations checks fixed OS-standard install paths.
func ProbeStandardLocations() Probe {
	return func() (string, bool) {
		for _, path := range standardLocations {
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, true
			}
		}
		return "", false
	}
}

var pathCandidates = []string{
	"chromium",
	"chromium-browser",
	"google-chrome",
	"google-chrome-stable",
	"chrome",
}

var standardLocations = []string{
	"/usr/bin/chromium",
	"/usr/bin/chromium-browser",
	"/usr/bin/google-chrome",
	"/usr/bin/google-chrome-stable",
	"/opt/google/chrome/chrome",
	"/snap/bin/chromium",
	"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
	"/Applications/Chromium.app/Contents/MacOS/Chromium",
	`C:\Program Files\Google\Chrome\Application\chrome.exe`,
	`C:\Program Files (x86)\Google\Chrome\Application\chrome.exe`,
}

// scanForExecutable walks a directory looking for a chromium-family binary.
func scanForExecutable(root string) (string, bool) {
	var found string
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || found != "" || d.IsDir() {
			return nil
		}
		name := strings.ToLower(d.Name())
		if name == "chrome" || name == "chromium" || name == "chrome.exe" || name == "msedge" {
			if info, statErr := d.Info(); statErr == nil && info.Mode()&0o111 != 0 {
				found = path
			}
		}
		return nil
	})
	return found, found != ""
}
