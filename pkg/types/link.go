package types

// Mechanism identifies how a directory link was realised on disk.
type Mechanism string

const (
	MechanismSymlink  Mechanism = "symlink"
	MechanismJunction Mechanism = "junction"
	MechanismCopy     Mechanism = "copy"

	// The following are only reported by inspection, never created.
	MechanismDirectory Mechanism = "directory"
	MechanismFile      Mechanism = "file"
	MechanismNone      Mechanism = ""
)

// IsLink reports whether m is one of the mechanisms that can be created.
func (m Mechanism) IsLink() bool {
	return m == MechanismSymlink || m == MechanismJunction || m == MechanismCopy
}

// ParseMechanism converts a settings value into a creatable mechanism.
func ParseMechanism(s string) (Mechanism, bool) {
	switch Mechanism(s) {
	case MechanismSymlink, MechanismJunction, MechanismCopy:
		return Mechanism(s), true
	}
	return MechanismNone, false
}

// LinkInfo describes what currently sits at a link path.
type LinkInfo struct {
	Path          string    `json:"path" yaml:"path"`
	Exists        bool      `json:"exists" yaml:"exists"`
	Mechanism     Mechanism `json:"mechanism,omitempty" yaml:"mechanism,omitempty"`
	Target        string    `json:"target,omitempty" yaml:"target,omitempty"`
	IsTargetAlive bool      `json:"is_target_alive" yaml:"is_target_alive"`
}
