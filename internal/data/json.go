package data

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"invest-sim/internal/model"
)

// LoadHistoryJSON reads a saved provider response from disk. Useful for
// offline runs and fixtures.
func LoadHistoryJSON(path string) (*model.History, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}
	var hist model.History
	if err := json.Unmarshal(raw, &hist); err != nil {
		return nil, fmt.Errorf("failed to parse history file: %w", err)
	}
	if err := model.ValidateSeries(hist.Bars); err != nil {
		return nil, fmt.Errorf("history file %s: %w", path, err)
	}
	return &hist, nil
}

// SaveHistoryJSON writes a fetched series to disk for later offline use.
func SaveHistoryJSON(hist *model.History, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	raw, err := json.MarshalIndent(hist, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write history file: %w", err)
	}
	return nil
}
