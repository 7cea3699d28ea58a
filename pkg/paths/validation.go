package paths

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/arthur-debert/savelink/pkg/errors"
)

// Maximum path lengths by platform. Windows uses the traditional MAX_PATH.
var maxPathLengths = map[string]int{
	"windows": 260,
	"darwin":  1024,
	"linux":   4096,
}

const defaultMaxPathLength = 4096

var windowsReservedNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true, "COM5": true,
	"COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true, "LPT5": true,
	"LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// Characters that may not appear in a single path component.
var invalidFilenameChars = map[string]string{
	"windows": `<>:"/\|?*`,
	"darwin":  ":",
	"linux":   "/",
}

const (
	MinGameNameLength = 1
	MaxGameNameLength = 100
)

var (
	gameNameInvalid = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	whitespaceRun   = regexp.MustCompile(`\s+`)
)

// MaxPathLength returns the path length limit for goos.
func MaxPathLength(goos string) int {
	if limit, ok := maxPathLengths[goos]; ok {
		return limit
	}
	return defaultMaxPathLength
}

// ValidatePath rejects empty paths and paths containing NUL bytes.
func ValidatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return errors.New(errors.ErrValidation, "path cannot be empty")
	}
	if strings.Contains(path, "\x00") {
		return errors.New(errors.ErrValidation, "path contains null bytes")
	}
	return nil
}

// ValidatePathLength checks path against the limit for goos.
func ValidatePathLength(path, goos string) error {
	limit := MaxPathLength(goos)
	if len(path) > limit {
		return errors.Newf(errors.ErrSystemLimit,
			"path length (%d) exceeds platform limit (%d)", len(path), limit).
			WithDetails(map[string]interface{}{
				"path":     path,
				"length":   len(path),
				"limit":    limit,
				"platform": goos,
			})
	}
	return nil
}

// ValidateFilename checks one path component for reserved names and
// characters the platform does not accept.
func ValidateFilename(name, goos string) error {
	if goos == "windows" {
		upper := strings.ToUpper(name)
		if windowsReservedNames[upper] {
			return errors.Newf(errors.ErrSystemLimit, "'%s' is a reserved name on Windows", name)
		}
		if base, _, found := strings.Cut(upper, "."); found && windowsReservedNames[base] {
			return errors.Newf(errors.ErrSystemLimit, "'%s' uses a reserved name on Windows", name)
		}
	}

	invalid := invalidFilenameChars[goos]
	for _, r := range name {
		if r == 0 || (goos == "windows" && r < 32) || strings.ContainsRune(invalid, r) {
			return errors.Newf(errors.ErrSystemLimit,
				"character %q is not allowed in filenames on %s", r, goos)
		}
	}
	return nil
}

// ValidateLinkPath runs the checks applied before any link mechanism is
// attempted: basic validity, length and the final component's name.
func ValidateLinkPath(path, goos string) error {
	if err := ValidatePath(path); err != nil {
		return err
	}
	if err := ValidatePathLength(path, goos); err != nil {
		return err
	}
	return ValidateFilename(filepath.Base(path), goos)
}

// CheckTraversal rejects paths with parent directory references.
func CheckTraversal(path string) error {
	if strings.Contains(path, "../") || strings.Contains(path, `..\`) {
		return errors.New(errors.ErrValidation,
			"directory traversal detected in path").WithDetail("path", path)
	}
	return nil
}

// ValidateDirectoryPath validates user input naming a directory and returns
// its absolute, cleaned form.
func ValidateDirectoryPath(path, goos string, mustExist bool) (string, error) {
	if err := ValidatePath(path); err != nil {
		return "", err
	}
	raw := strings.TrimSpace(path)
	if err := CheckTraversal(raw); err != nil {
		return "", err
	}

	abs, err := filepath.Abs(SanitizePath(raw))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrValidation, "invalid path format: %s", raw)
	}
	if err := ValidatePathLength(abs, goos); err != nil {
		return "", err
	}

	info, err := os.Stat(abs)
	switch {
	case err == nil && !info.IsDir():
		return "", errors.Newf(errors.ErrValidation, "path is not a directory: %s", abs)
	case err != nil && os.IsNotExist(err):
		if mustExist {
			return "", errors.Newf(errors.ErrValidation, "directory does not exist: %s", abs)
		}
	case err != nil && os.IsPermission(err):
		return "", errors.Wrapf(err, errors.ErrPermission, "cannot access %s", abs)
	case err != nil:
		return "", errors.Wrapf(err, errors.ErrValidation, "cannot stat %s", abs)
	}

	return abs, nil
}

// SanitizeGameName trims and cleans a display name for a game entry.
func SanitizeGameName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New(errors.ErrValidation, "game name cannot be empty")
	}

	length := utf8.RuneCountInString(name)
	if length < MinGameNameLength {
		return "", errors.Newf(errors.ErrValidation,
			"game name too short (minimum %d characters)", MinGameNameLength)
	}
	if length > MaxGameNameLength {
		return "", errors.Newf(errors.ErrValidation,
			"game name too long (maximum %d characters)", MaxGameNameLength)
	}

	sanitized := gameNameInvalid.ReplaceAllString(name, "")
	sanitized = strings.TrimSpace(whitespaceRun.ReplaceAllString(sanitized, " "))
	if sanitized == "" {
		return "", errors.New(errors.ErrValidation, "game name contains only invalid characters")
	}

	return sanitized, nil
}
