package portfolio

import (
	"encoding/json"
	"os"
	"path/filepath"

	"MarketLens/internal/model"
)

// LoadState reads saved portfolios from a JSON file. Returns an empty map if
// the file doesn't exist yet.
func LoadState(filePath string) (map[string]*model.Portfolio, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]*model.Portfolio{}, nil
		}
		return nil, err
	}
	var state map[string]*model.Portfolio
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	if state == nil {
		state = map[string]*model.Portfolio{}
	}
	return state, nil
}

// SaveState writes all portfolios to a JSON file, creating parent
// directories as needed.
func SaveState(filePath string, state map[string]*model.Portfolio) error {
	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, data, 0644)
}
