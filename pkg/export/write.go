package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/clinigrid/clinigrid/pkg/errors"
)

// =============================================================================
// Atomic File Writes
// =============================================================================

// WriteFile writes an artifact to path atomically: the bytes land in a
// uniquely named temp file in the target directory, then replace the final
// path with a rename. Readers never observe a half-written export, and a
// failed write leaves any previous artifact untouched.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(errors.ErrCodeExportIO, err, "create export directory %s", dir)
	}

	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.NewString()))
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeExportIO, err, "write %s", path)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return errors.Wrap(errors.ErrCodeExportIO, err, "finalize %s", path)
	}
	return nil
}
