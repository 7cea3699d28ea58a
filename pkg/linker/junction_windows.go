//go:build windows

package linker

import (
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/savelink/pkg/logging"
)

type mklinkJunctioner struct {
	logger zerolog.Logger
}

func defaultJunctioner(logger zerolog.Logger) Junctioner {
	return &mklinkJunctioner{logger: logger}
}

func (j *mklinkJunctioner) Create(link, target string) error {
	args := []string{"/c", "mklink", "/J", link, target}
	logging.LogCommand(j.logger, "cmd", args)

	out, err := exec.Command("cmd", args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("mklink /J failed: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Junctions are mount-point reparse points. Lstat reports them as irregular
// directories, and Readlink resolves their target.
func (j *mklinkJunctioner) IsJunction(path string) bool {
	info, err := os.Lstat(path)
	if err != nil || info.Mode()&fs.ModeSymlink != 0 {
		return false
	}
	if info.Mode()&fs.ModeIrregular == 0 {
		return false
	}
	_, err = os.Readlink(path)
	return err == nil
}

func (j *mklinkJunctioner) Target(path string) (string, error) {
	return os.Readlink(path)
}

// Remove deletes the junction itself; RemoveDirectory never recurses into
// the target.
func (j *mklinkJunctioner) Remove(path string) error {
	return os.Remove(path)
}
