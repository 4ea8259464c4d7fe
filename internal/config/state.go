package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// StateFile records the versions last propagated in a checkout.
const StateFile = ".javet-buildkit.json"

type LocalState struct {
	Versions map[string]AppliedVersion `json:"versions"`
}

type AppliedVersion struct {
	Version   string    `json:"version"`
	AppliedAt time.Time `json:"applied_at"`
	Updated   int       `json:"updated"`
	Missing   int       `json:"missing,omitempty"`
}

// Load reads the local state from the project root. A missing state file
// yields an empty state.
func Load(root string) (*LocalState, error) {
	path := filepath.Join(root, StateFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &LocalState{Versions: make(map[string]AppliedVersion)}, nil
		}
		return nil, fmt.Errorf("reading state: %w", err)
	}

	var state LocalState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parsing state: %w", err)
	}
	if state.Versions == nil {
		state.Versions = make(map[string]AppliedVersion)
	}
	return &state, nil
}

// Record stores the outcome of a campaign run.
func (s *LocalState) Record(campaign string, v AppliedVersion) {
	if s.Versions == nil {
		s.Versions = make(map[string]AppliedVersion)
	}
	s.Versions[campaign] = v
}

// Save writes the local state to the project root.
func (s *LocalState) Save(root string) error {
	path := filepath.Join(root, StateFile)
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling state: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing state: %w", err)
	}
	return nil
}
