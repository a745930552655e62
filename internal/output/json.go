package output

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/portsweep/portsweep/internal/errors"
	"github.com/portsweep/portsweep/internal/scanning"
)

// WriteJSON persists the result map as a JSON object mapping each host to
// its retained port results. The write goes through a temp file in the same
// directory and a rename, so a failed write never leaves a truncated file.
// A write failure only loses persistence; results were already streamed.
func WriteJSON(path string, results scanning.ResultMap) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return errors.ErrOutputWrite(path, err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".portsweep-*.json")
	if err != nil {
		return errors.ErrOutputWrite(path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.ErrOutputWrite(path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.ErrOutputWrite(path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.ErrOutputWrite(path, err)
	}
	return nil
}
