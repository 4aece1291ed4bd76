package util

import (
	"encoding/json"
	"fmt"
	"io/fs"

	"es-server/models"
)

// ReadSavedLocationsResponseFromJSON loads a SavedLocationsResponse from fsys.
func ReadSavedLocationsResponseFromJSON(fsys fs.FS, filePath string) (*models.SavedLocationsResponse, error) {
	var resp models.SavedLocationsResponse
	if err := readJSON(fsys, filePath, &resp); err != nil {
		return nil, fmt.Errorf("failed to load SavedLocationsResponse: %w", err)
	}
	return &resp, nil
}

// ReadEventsResponseFromJSON loads an EventsResponse from fsys.
func ReadEventsResponseFromJSON(fsys fs.FS, filePath string) (*models.EventsResponse, error) {
	var resp models.EventsResponse
	if err := readJSON(fsys, filePath, &resp); err != nil {
		return nil, fmt.Errorf("failed to load EventsResponse: %w", err)
	}
	return &resp, nil
}

// ReadSpendTotalFromJSON loads a SpendTotal from fsys.
func ReadSpendTotalFromJSON(fsys fs.FS, filePath string) (*models.SpendTotal, error) {
	var resp models.SpendTotal
	if err := readJSON(fsys, filePath, &resp); err != nil {
		return nil, fmt.Errorf("failed to load SpendTotal: %w", err)
	}
	return &resp, nil
}

func readJSON(fsys fs.FS, filePath string, v interface{}) error {
	data, err := fs.ReadFile(fsys, filePath)
	if err != nil {
		return fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal %q: %w", filePath, err)
	}
	return nil
}
