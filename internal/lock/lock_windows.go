//go:build windows

package lock

import (
	"fmt"
	"os"
)

// LockFile attempts to acquire an exclusive lock on an open target file.
//
// On Windows, this is implemented by atomically creating a sidecar file named
// "<target>.lock". If that file already exists, the target is assumed to be
// in use by another process.
func LockFile(f *os.File) error {
	lf, err := os.OpenFile(f.Name()+".lock", os.O_CREATE|os.O_EXCL|os.O_RDWR, 0644)
	if err != nil {
		return fmt.Errorf("target %s is in use by another process", f.Name())
	}
	return lf.Close()
}

// UnlockFile releases a lock acquired via LockFile by removing the sidecar
// file. It does not close f.
func UnlockFile(f *os.File) {
	os.Remove(f.Name() + ".lock")
}
