package linker

import (
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/savelink/pkg/filesystem"
	"github.com/arthur-debert/savelink/pkg/types"
)

// Inspect reports what sits at link. Mechanisms are checked in the order
// symlink, junction, copy marker, then plain directory or file.
func (s *Strategy) Inspect(link string) types.LinkInfo {
	info := types.LinkInfo{Path: link}

	st, err := s.fs.Lstat(link)
	if err != nil {
		return info
	}
	info.Exists = true

	switch {
	case st.Mode()&fs.ModeSymlink != 0:
		info.Mechanism = types.MechanismSymlink
		if target, err := s.fs.Readlink(link); err == nil {
			info.Target = s.absTarget(link, target)
		}
	case s.junctions.IsJunction(link):
		info.Mechanism = types.MechanismJunction
		if target, err := s.junctions.Target(link); err == nil {
			info.Target = s.absTarget(link, target)
		}
	case st.IsDir():
		if target, ok := s.readMarker(link); ok {
			info.Mechanism = types.MechanismCopy
			info.Target = target
		} else {
			info.Mechanism = types.MechanismDirectory
			info.Target = link
		}
	default:
		info.Mechanism = types.MechanismFile
	}

	if info.Target != "" {
		info.IsTargetAlive = filesystem.IsDir(s.fs, info.Target)
	}
	return info
}

// PointsAt reports whether the link at link currently resolves to target.
func (s *Strategy) PointsAt(link, target string) bool {
	info := s.Inspect(link)
	if !info.Exists || !info.Mechanism.IsLink() {
		return false
	}
	return SamePath(info.Target, target)
}

func (s *Strategy) absTarget(link, target string) string {
	if filepath.IsAbs(target) {
		return filepath.Clean(target)
	}
	return filepath.Join(filepath.Dir(link), target)
}

// SamePath compares two paths after resolving symlinks where possible.
func SamePath(a, b string) bool {
	return canonical(a) == canonical(b)
}

func canonical(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		p = abs
	}
	if resolved, err := filepath.EvalSymlinks(p); err == nil {
		p = resolved
	}
	return filepath.Clean(p)
}
