package diff

import "fmt"

// Status classifies a block relative to the two versions being compared.
type Status int

const (
	// StatusUnchanged marks a block present in both versions.
	StatusUnchanged Status = iota
	// StatusAdded marks a block present only in the newer version.
	StatusAdded
	// StatusRemoved marks a block present only in the older version.
	StatusRemoved
)

// String returns the attribute value used on the wire.
func (s Status) String() string {
	switch s {
	case StatusUnchanged:
		return "unchanged"
	case StatusAdded:
		return "added"
	case StatusRemoved:
		return "removed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// ParseStatus is the inverse of [Status.String].
func ParseStatus(s string) (Status, error) {
	switch s {
	case "unchanged":
		return StatusUnchanged, nil
	case "added":
		return StatusAdded, nil
	case "removed":
		return StatusRemoved, nil
	}
	return 0, fmt.Errorf("unknown diff status %q", s)
}
