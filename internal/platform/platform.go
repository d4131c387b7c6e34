// Package platform detects, once at startup, whether the process runs under
// a WSL compatibility layer and resolves the Docker Desktop data paths that
// the builder purge and full-reset paths operate on. The result is passed
// explicitly to the handlers that need it instead of being read as ambient
// global state.
package platform

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bnema/shipshape/pkg/logger"
)

// Platform describes the detected host environment. Read-only after Detect.
type Platform struct {
	// WSL is true when running inside Windows Subsystem for Linux, where
	// Docker Desktop keeps build caches on paths that the engine prune does
	// not reach.
	WSL bool

	home string
}

// Detect probes the environment once. WSL is recognized by the interop
// marker in /proc/version or the WSL_DISTRO_NAME variable the shim exports.
func Detect() Platform {
	p := Platform{}
	if home, err := os.UserHomeDir(); err == nil {
		p.home = home
	}
	if os.Getenv("WSL_DISTRO_NAME") != "" {
		p.WSL = true
		return p
	}
	if data, err := os.ReadFile("/proc/version"); err == nil {
		if strings.Contains(strings.ToLower(string(data)), "microsoft") {
			p.WSL = true
		}
	}
	return p
}

// CacheDirs returns the Docker Desktop cache directories that a builder
// cleanup should purge when running under WSL. Empty outside WSL.
func (p Platform) CacheDirs() []string {
	if !p.WSL || p.home == "" {
		return nil
	}
	return []string{
		filepath.Join(p.home, ".docker", "buildx", "cache"),
		filepath.Join(p.home, ".docker", "desktop", "cache"),
	}
}

// DataDirs returns the Docker Desktop data directories wiped by a full
// reset. Empty outside WSL; a reset elsewhere is a no-op.
func (p Platform) DataDirs() []string {
	if !p.WSL || p.home == "" {
		return nil
	}
	return []string{
		filepath.Join(p.home, ".docker", "desktop"),
	}
}

// PurgeCacheDirs removes the WSL cache directories. Best-effort: failures
// are logged and never abort the run. Returns the number of directories that
// were actually removed.
func (p Platform) PurgeCacheDirs(dryRun bool) int {
	purged := 0
	for _, dir := range p.CacheDirs() {
		if _, err := os.Stat(dir); err != nil {
			continue
		}
		logger.Debug("Purging cache directory", "path", dir, "dry_run", dryRun)
		if dryRun {
			purged++
			continue
		}
		if err := os.RemoveAll(dir); err != nil {
			logger.Debug("Failed to purge cache directory", "path", dir, "error", err)
			continue
		}
		purged++
	}
	return purged
}

// ResetDataDirs wipes the Docker Desktop data directories. Same best-effort
// contract as PurgeCacheDirs.
func (p Platform) ResetDataDirs(dryRun bool) int {
	wiped := 0
	for _, dir := range p.DataDirs() {
		if _, err := os.Stat(dir); err != nil {
			continue
		}
		logger.Debug("Resetting data directory", "path", dir, "dry_run", dryRun)
		if dryRun {
			wiped++
			continue
		}
		if err := os.RemoveAll(dir); err != nil {
			logger.Debug("Failed to reset data directory", "path", dir, "error", err)
			continue
		}
		wiped++
	}
	return wiped
}
