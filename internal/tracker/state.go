package tracker

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"SwingSentinel/internal/model"
)

// State is the on-disk shape of the position book.
type State struct {
	Positions []model.Position `json:"positions"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// LoadState reads the position book from a JSON file. Returns an empty
// state if the file doesn't exist.
func LoadState(filePath string) (*State, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &State{}, nil
		}
		return nil, err
	}
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// SaveState writes the position book to a JSON file.
func SaveState(filePath string, state *State) error {
	state.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(filePath, data, 0644)
}
