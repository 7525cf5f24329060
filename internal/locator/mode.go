package locator

// Mode tags a materials root with the location it is anchored to.
type Mode int

const (
	// ModeProject roots live under a detected project boundary.
	ModeProject Mode = iota
	// ModeGlobal roots live under the user's home directory.
	ModeGlobal
	// ModeManual marks an explicit output path chosen by the operator.
	ModeManual
)

// String returns a human-readable name for the mode.
func (m Mode) String() string {
	switch m {
	case ModeProject:
		return "project"
	case ModeGlobal:
		return "global"
	case ModeManual:
		return "manual"
	default:
		return "unknown"
	}
}

// Root is one physical directory that may hold material entries.
type Root struct {
	Mode Mode
	Path string
}
