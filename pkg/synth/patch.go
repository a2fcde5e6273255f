package synth

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
)

// ErrInvalidPatchValue is returned for a patch entry that is neither a
// number nor a string.
var ErrInvalidPatchValue = errors.New("invalid patch value")

// Patch maps parameter names to start-up values. A number is a normalized
// 0-1 value; a string is parsed the way the parameter displays itself, so
// {"Osc 1": "Saw", "Pan": "25% left", "Attack": "100ms"} is valid.
type Patch map[string]any

// LoadPatch decodes a JSON patch
func LoadPatch(r io.Reader) (Patch, error) {
	var p Patch
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("decode patch: %w", err)
	}
	return p, nil
}

// LoadPatchFile reads a JSON patch from disk
func LoadPatchFile(path string) (Patch, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open patch: %w", err)
	}
	defer f.Close()

	p, err := LoadPatch(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// ApplyPatch sets every named parameter. Entries are applied in name order;
// bad entries are skipped and reported together.
func (in *Instrument) ApplyPatch(p Patch) error {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		if err := in.applyPatchEntry(name, p[name]); err != nil {
			errs = append(errs, err)
			continue
		}
		in.log.Debug("patch: %s = %v", name, p[name])
	}
	return errors.Join(errs...)
}

func (in *Instrument) applyPatchEntry(name string, value any) error {
	par := in.Parameters().GetByName(name)
	if par == nil {
		return fmt.Errorf("%w: %q", ErrUnknownParameter, name)
	}

	switch v := value.(type) {
	case float64:
		par.SetValue(v)
	case string:
		normalized, err := par.ParseValue(v)
		if err != nil {
			return err
		}
		par.SetValue(normalized)
	default:
		return fmt.Errorf("%w for %q: %v", ErrInvalidPatchValue, name, value)
	}
	return nil
}

// Patch returns the current value of every parameter, normalized.
func (in *Instrument) Patch() Patch {
	p := make(Patch, in.ParameterCount())
	for _, par := range in.Parameters().All() {
		p[par.Name] = par.GetValue()
	}
	return p
}
