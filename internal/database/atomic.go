package database

import (
	"fmt"
	"os"
	"path/filepath"
)

// writeFileAtomic replaces filename by writing to a temp file in the same
// directory and renaming it into place, so readers never see a partial
// snapshot and a crash mid-write cannot truncate the previous one.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)
	tmp, err := os.CreateTemp(dir, ".jotter-*")
	if err != nil {
		return fmt.Errorf("error creating temp file: %v", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("error writing temp file: %v", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("error syncing temp file: %v", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("error closing temp file: %v", err)
	}
	if err := os.Chmod(tmp.Name(), perm); err != nil {
		return fmt.Errorf("error setting temp file mode: %v", err)
	}
	if err := os.Rename(tmp.Name(), filename); err != nil {
		return fmt.Errorf("error renaming temp file to %s: %v", filename, err)
	}
	return nil
}
