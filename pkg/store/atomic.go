// SPDX-FileCopyrightText: Copyright The Sidearm Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// rename is replaced in tests to simulate a crash between write and rename.
var rename = os.Rename

// AtomicWriteJSON writes data as indented JSON to path.
func AtomicWriteJSON(data any, path string) error {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	return AtomicWriteFile(path, append(b, '\n'))
}

// AtomicWriteFile writes b to path with mode 0644.
//
// The data is written to a temporary file in the same directory and renamed
// onto path, so readers never observe a partially written file. If the process
// dies before the rename, path keeps its previous content and a stray
// "<name>.*.tmp" file may be left behind.
func AtomicWriteFile(path string, b []byte) error {
	tmpF, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmp := tmpF.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmpF.Close()
			_ = os.Remove(tmp)
		}
	}()

	if _, err := tmpF.Write(b); err != nil {
		return err
	}
	if err := tmpF.Sync(); err != nil {
		return err
	}
	if err := tmpF.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		return err
	}
	if err := rename(tmp, path); err != nil {
		return err
	}
	committed = true
	return nil
}
