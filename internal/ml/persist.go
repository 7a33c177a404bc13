package ml

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// loadOrCreateModel implements the model lifecycle: read the persisted model,
// and on any load error (missing file, corrupt JSON, stale version) retrain
// from the fixed demonstration corpus and persist again.
func loadOrCreateModel(fs afero.Fs, path string) (*bayesModel, error) {
	if data, err := afero.ReadFile(fs, path); err == nil {
		var m bayesModel
		if err := json.Unmarshal(data, &m); err == nil {
			m.rebuildVocabulary()
			if m.valid() {
				return &m, nil
			}
		}
	}

	m := trainModel()
	if err := saveModel(fs, path, m); err != nil {
		return nil, err
	}
	return m, nil
}

func saveModel(fs afero.Fs, path string, m *bayesModel) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create model directory: %w", err)
		}
	}
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode model: %w", err)
	}
	if err := afero.WriteFile(fs, path, data, 0o644); err != nil {
		return fmt.Errorf("write model file: %w", err)
	}
	return nil
}
