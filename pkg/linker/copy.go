package linker

import (
	"bufio"
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/savelink/pkg/errors"
	"github.com/arthur-debert/savelink/pkg/filesystem"
	"github.com/arthur-debert/savelink/pkg/types"
)

// MarkerFileName is the hidden file that identifies a copy-type link. It is
// part of the on-disk format.
const MarkerFileName = ".sacred_copy_link"

const markerCreator = "savelink"

func markerContent(target string) []byte {
	return []byte(fmt.Sprintf("target=%s\ncreated_by=%s\n", target, markerCreator))
}

// parseMarker extracts the target recorded in a marker file. Unknown keys
// are ignored.
func parseMarker(data []byte) (string, bool) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		key, value, ok := strings.Cut(strings.TrimSpace(scanner.Text()), "=")
		if ok && strings.TrimSpace(key) == "target" {
			value = strings.TrimSpace(value)
			return value, value != ""
		}
	}
	return "", false
}

func (s *Strategy) readMarker(link string) (string, bool) {
	data, err := s.fs.ReadFile(filepath.Join(link, MarkerFileName))
	if err != nil {
		return "", false
	}
	return parseMarker(data)
}

func (s *Strategy) writeMarker(link, target string) error {
	return s.writeMarkerData(link, markerContent(target))
}

func (s *Strategy) writeMarkerData(link string, data []byte) error {
	marker := filepath.Join(link, MarkerFileName)
	if err := s.fs.WriteFile(marker, data, 0644); err != nil {
		return err
	}
	if err := filesystem.Hide(marker); err != nil {
		s.logger.Warn().Err(err).Str("marker", marker).Msg("Could not hide copy marker")
	}
	return nil
}

func (s *Strategy) createCopy(link, target string) error {
	if err := filesystem.CopyTree(s.fs, target, link); err != nil {
		return err
	}
	if err := s.writeMarker(link, target); err != nil {
		return err
	}
	s.logger.Warn().
		Str("link", link).
		Str("target", target).
		Msg("Created copy instead of a link; changes will not propagate until synced")
	return nil
}

// SyncCopy refreshes a copy-type link from its recorded target, keeping the
// existing marker as is. The fresh copy is built next to the link and
// swapped in, so a failure part way leaves the old copy in place.
func (s *Strategy) SyncCopy(link string) error {
	info := s.Inspect(link)
	if info.Mechanism != types.MechanismCopy {
		return errors.Newf(errors.ErrNotCopyLink, "not a copy-type link: %s", link).
			WithDetail("mechanism", string(info.Mechanism))
	}
	if !info.IsTargetAlive {
		return errors.Newf(errors.ErrNotFound, "copy target no longer exists: %s", info.Target).
			WithDetail("link", link)
	}

	staging := link + ".sync"
	old := link + ".old"
	for _, p := range []string{staging, old} {
		if err := s.fs.RemoveAll(p); err != nil {
			return errors.Wrapf(err, errors.ErrLinkCreation, "cannot clear %s", p)
		}
	}

	if err := filesystem.CopyTree(s.fs, info.Target, staging); err != nil {
		_ = s.fs.RemoveAll(staging)
		return errors.Wrapf(err, errors.ErrLinkCreation, "failed to copy %s", info.Target)
	}
	marker, err := s.fs.ReadFile(filepath.Join(link, MarkerFileName))
	if err != nil {
		marker = markerContent(info.Target)
	}
	if err := s.writeMarkerData(staging, marker); err != nil {
		_ = s.fs.RemoveAll(staging)
		return errors.Wrap(err, errors.ErrLinkCreation, "failed to write copy marker")
	}

	if err := filesystem.Move(s.fs, link, old); err != nil {
		_ = s.fs.RemoveAll(staging)
		return errors.Wrapf(err, errors.ErrLinkRemoval, "failed to set aside %s", link)
	}
	if err := filesystem.Move(s.fs, staging, link); err != nil {
		_ = filesystem.Move(s.fs, old, link)
		_ = s.fs.RemoveAll(staging)
		return errors.Wrapf(err, errors.ErrLinkCreation, "failed to swap in refreshed copy at %s", link)
	}
	if err := s.fs.RemoveAll(old); err != nil {
		s.logger.Warn().Err(err).Str("path", old).Msg("Could not remove previous copy")
	}

	s.logger.Info().Str("link", link).Str("target", info.Target).Msg("Synchronized copy link")
	return nil
}
