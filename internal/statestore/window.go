package statestore

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// WindowState is the blob the terminal host saves between runs.
type WindowState struct {
	// Files are the paths of the open, file-backed documents in tab order.
	Files []string `yaml:"files,omitempty"`
	// Current is the index into Files of the focused document, or -1.
	Current int `yaml:"current"`
	// Width and Height are the last terminal size.
	Width  int `yaml:"width,omitempty"`
	Height int `yaml:"height,omitempty"`
}

// Encode serializes the state.
func (w WindowState) Encode() ([]byte, error) {
	data, err := yaml.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("encoding window state: %w", err)
	}
	return data, nil
}

// DecodeWindowState parses a blob written by Encode.
func DecodeWindowState(blob []byte) (WindowState, error) {
	state := WindowState{Current: -1}
	if err := yaml.Unmarshal(blob, &state); err != nil {
		return WindowState{Current: -1}, fmt.Errorf("decoding window state: %w", err)
	}
	if state.Current >= len(state.Files) {
		state.Current = len(state.Files) - 1
	}
	return state, nil
}
