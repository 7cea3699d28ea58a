//go:build !windows

package linker

import (
	"errors"

	"github.com/rs/zerolog"
)

var errJunctionUnsupported = errors.New("junction points are only supported on Windows")

type unsupportedJunctioner struct{}

func defaultJunctioner(zerolog.Logger) Junctioner {
	return unsupportedJunctioner{}
}

func (unsupportedJunctioner) Create(link, target string) error   { return errJunctionUnsupported }
func (unsupportedJunctioner) IsJunction(path string) bool        { return false }
func (unsupportedJunctioner) Target(path string) (string, error) { return "", errJunctionUnsupported }
func (unsupportedJunctioner) Remove(path string) error           { return errJunctionUnsupported }
