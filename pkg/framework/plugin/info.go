package plugin

import (
	"crypto/sha1"
	"errors"
	"fmt"
)

// Info contains instrument metadata
type Info struct {
	ID         string // Unique identifier (e.g., "com.example.polysynth")
	Name       string // Display name
	Version    string // Semantic version (e.g., "1.0.0")
	Vendor     string // Company/developer name
	Category   string // e.g. "Instrument|Synth"
	Inputs     int    // Audio input channels
	Outputs    int    // Audio output channels
	Parameters int    // Number of exposed parameters
}

// ErrEmptyID is returned when an Info has no identifier
var ErrEmptyID = errors.New("plugin id is empty")

// UID derives a stable 16-byte identifier from the string ID. It is a
// name-based (version 5 layout) UUID so the same ID always maps to the same
// bytes.
func (i Info) UID() [16]byte {
	sum := sha1.Sum([]byte(i.ID))

	var uid [16]byte
	copy(uid[:], sum[:16])
	uid[6] = (uid[6] & 0x0f) | 0x50
	uid[8] = (uid[8] & 0x3f) | 0x80
	return uid
}

// ValidateUID checks that a UID can be derived
func (i Info) ValidateUID() error {
	if i.ID == "" {
		return ErrEmptyID
	}
	return nil
}

func (i Info) String() string {
	return fmt.Sprintf("%s %s (%s) %din/%dout %d params",
		i.Name, i.Version, i.Vendor, i.Inputs, i.Outputs, i.Parameters)
}
