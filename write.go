package hexpix

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
)

// replaceExt swaps the extension of file for ext, appending it if file has
// no extension.
func replaceExt(file, ext string) string {
	return strings.TrimSuffix(file, filepath.Ext(file)) + ext
}

// syncDir flushes the directory entries of dir to disk.
func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	if err := d.Sync(); err != nil {
		d.Close()
		return err
	}
	return d.Close()
}

// writeFile replaces file with b. The data goes to a temporary file in the
// same directory which is synced and renamed over file, then the directory
// is synced so the rename survives a crash. file is either left untouched
// or holds all of b.
func writeFile(file string, b []byte) error {
	if err := writeTemp(file, b); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrContainerWrite, file, err)
	}
	if err := syncDir(filepath.Dir(file)); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrContainerWrite, file, err)
	}
	return nil
}

func writeTemp(file string, b []byte) (err error) {
	f, err := ioutil.TempFile(filepath.Dir(file), "."+filepath.Base(file)+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(f.Name())
		}
	}()

	if _, err = f.Write(b); err != nil {
		return err
	}

	if err = f.Sync(); err != nil {
		return err
	}

	if err = f.Chmod(0644); err != nil {
		return err
	}

	if err = f.Close(); err != nil {
		return err
	}

	return os.Rename(f.Name(), file)
}
