package emit

import (
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/notesite/internal/errors"
)

// writeFileAtomic writes data to a temporary file next to path and renames it
// into place, so readers never observe a partial file.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to create temporary file").
			WithContext("path", path).Build()
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write temporary file").
			WithContext("path", path).Build()
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to close temporary file").
			WithContext("path", path).Build()
	}
	// #nosec G302 -- generator inputs are world-readable
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to set file mode").
			WithContext("path", path).Build()
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to replace file").
			WithContext("path", path).Build()
	}
	return nil
}
