//go:build unix

package lock

import (
	"fmt"
	"os"
	"syscall"
)

// LockFile attempts to acquire an exclusive, non-blocking advisory lock on
// an open target file, so two tools never write the same target at once.
//
// On Unix systems, this uses flock(2) on the file itself. If the lock cannot
// be acquired, the target is assumed to be in use by another process.
//
// The lock lasts until UnlockFile is called or the file is closed.
func LockFile(f *os.File) error {
	err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB)
	if err != nil {
		return fmt.Errorf("target %s is in use by another process: %w", f.Name(), err)
	}
	return nil
}

// UnlockFile releases a lock acquired via LockFile. It does not close f.
func UnlockFile(f *os.File) {
	syscall.Flock(int(f.Fd()), syscall.LOCK_UN)
}
