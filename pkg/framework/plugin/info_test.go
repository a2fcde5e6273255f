package plugin

import (
	"errors"
	"testing"

	"github.com/justyntemme/polysynth/pkg/framework/param"
)

func TestUIDGeneration(t *testing.T) {
	ids := []string{
		"com.justyntemme.polysynth",
		"com.mycompany.newplugin",
		"com.mycompany.anotherplugin",
	}

	for _, id := range ids {
		t.Run(id, func(t *testing.T) {
			info := Info{ID: id}

			uid1 := info.UID()
			uid2 := info.UID()
			if uid1 != uid2 {
				t.Errorf("UID generation is not deterministic for %s", id)
			}

			if uid1[6]>>4 != 5 {
				t.Errorf("Expected version 5 UID, got %x", uid1)
			}
			if uid1[8]&0xc0 != 0x80 {
				t.Errorf("Expected RFC 4122 variant, got %x", uid1)
			}
		})
	}
}

func TestUIDUniqueness(t *testing.T) {
	plugins := []string{
		"com.company1.plugin1",
		"com.company1.plugin2",
		"com.company2.plugin1",
		"com.different.name",
	}

	uids := make(map[[16]byte]string)

	for _, pluginID := range plugins {
		uid := Info{ID: pluginID}.UID()

		if existingID, exists := uids[uid]; exists {
			t.Errorf("UID collision between %s and %s", pluginID, existingID)
		}

		uids[uid] = pluginID
	}
}

func TestUIDValidation(t *testing.T) {
	if err := (Info{ID: "com.example.plugin"}).ValidateUID(); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if err := (Info{}).ValidateUID(); !errors.Is(err, ErrEmptyID) {
		t.Errorf("Expected ErrEmptyID, got %v", err)
	}
}

func TestBaseInfo(t *testing.T) {
	b := NewBase(Info{ID: "com.example.synth", Name: "Synth", Version: "1.0.0", Vendor: "Example", Outputs: 2})
	_ = b.Parameters().Add(param.New(0, "A").Build(), param.New(1, "B").Build())

	info := b.Info()
	if info.Parameters != 2 {
		t.Errorf("Expected 2 parameters, got %d", info.Parameters)
	}

	want := "Synth 1.0.0 (Example) 0in/2out 2 params"
	if got := info.String(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}
