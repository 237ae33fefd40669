package config

import (
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
)

// configFileName is the file name looked up in every config location.
const configFileName = "agenda.toml"

// windowsEnvRef matches a %NAME% reference.
var windowsEnvRef = regexp.MustCompile(`%([^%]+)%`)

// expandPath expands environment references and a leading ~ in p.
// %NAME% references are also expanded on Windows; unknown names are kept.
func expandPath(p string) string {
	if p == "" {
		return p
	}
	p = os.ExpandEnv(p)
	if runtime.GOOS == "windows" {
		p = windowsEnvRef.ReplaceAllStringFunc(p, func(ref string) string {
			if val, ok := os.LookupEnv(ref[1 : len(ref)-1]); ok {
				return val
			}
			return ref
		})
	}
	return expandHome(p)
}

func expandHome(p string) string {
	rest, ok := strings.CutPrefix(p, "~")
	if !ok || (rest != "" && !isSeparator(rest[0])) {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, rest)
}

func isSeparator(c byte) bool {
	return c == '/' || (runtime.GOOS == "windows" && c == '\\')
}

// resolveFrom expands p and anchors it at dir when it is relative.
// Paths set in a config file are relative to that file's directory.
func resolveFrom(dir, p string) string {
	p = expandPath(p)
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// findProjectConfigFile returns agenda.toml or .agenda.toml from the
// working directory, or "".
func findProjectConfigFile() string {
	return firstExisting(configFileName, "."+configFileName)
}

// findUserConfigFile returns the first user-level config file found, or "".
// ~/.agenda/agenda.toml wins over the OS config directory.
func findUserConfigFile() string {
	return firstExisting(userConfigCandidates()...)
}

func userConfigCandidates() []string {
	var candidates []string
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".agenda", configFileName))
	}
	if dir := osUserConfigDir(); dir != "" {
		candidates = append(candidates, filepath.Join(dir, "agenda", configFileName))
	}
	return candidates
}

func firstExisting(paths ...string) string {
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// osUserConfigDir returns the per-user config directory, or "" when it
// cannot be determined. XDG_CONFIG_HOME is honoured on Unix systems other
// than macOS.
func osUserConfigDir() string {
	if runtime.GOOS == "windows" {
		return os.Getenv("APPDATA")
	}
	if runtime.GOOS != "darwin" {
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return xdg
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Application Support")
	}
	return filepath.Join(home, ".config")
}
