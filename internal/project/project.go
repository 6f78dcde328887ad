// Package project reads and writes the flat JSON project file of the cooling
// load form.
package project

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	coolingload "Frostline/internal/calc/coolingload"
)

// FileName is the default download name.
const FileName = "cooling_load_project.json"

var (
	ErrMalformedProjectFile = errors.New("malformed project file")
	ErrEmptyFileSelection   = errors.New("no project file selected")
)

// Encode writes the known fields of f as an indented JSON object.
func Encode(f coolingload.Fields) ([]byte, error) {
	out := make(map[string]any, len(f))
	for id, v := range f {
		sp, ok := coolingload.Lookup(id)
		if !ok {
			continue
		}
		if sp.Kind == coolingload.KindCheckbox {
			out[id] = f.Bool(id)
		} else if s, ok := v.(string); ok {
			out[id] = s
		} else {
			out[id] = f.Text(id)
		}
	}
	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding project: %w", err)
	}
	return b, nil
}

// Decode parses a project file. Anything but a JSON object is rejected.
func Decode(data []byte) (coolingload.Fields, error) {
	var raw map[string]any
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedProjectFile, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: not an object", ErrMalformedProjectFile)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data", ErrMalformedProjectFile)
	}
	return coolingload.Fields(raw), nil
}

// Apply copies the known values of loaded over current. Unknown ids are
// ignored and ids missing from loaded keep their current value.
func Apply(current, loaded coolingload.Fields) coolingload.Fields {
	out := current.Clone()
	for id, v := range loaded {
		sp, ok := coolingload.Lookup(id)
		if !ok {
			continue
		}
		if sp.Kind == coolingload.KindCheckbox {
			switch b := v.(type) {
			case bool:
				out[id] = b
			case string:
				if parsed, err := strconv.ParseBool(b); err == nil {
					out[id] = parsed
				}
			}
			continue
		}
		switch s := v.(type) {
		case string:
			out[id] = s
		case float64:
			out[id] = strconv.FormatFloat(s, 'f', -1, 64)
		case bool:
			out[id] = strconv.FormatBool(s)
		case nil:
			out[id] = ""
		}
	}
	return out
}

// Load decodes data and applies it over current. On error current is
// returned untouched.
func Load(current coolingload.Fields, data []byte) (coolingload.Fields, error) {
	loaded, err := Decode(data)
	if err != nil {
		return current, err
	}
	return Apply(current, loaded), nil
}
