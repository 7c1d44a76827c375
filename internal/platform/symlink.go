// Package platform holds thin filesystem helpers (symlinks, permissions)
// used by the linker, ssh, and doctor surfaces.
package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// CreateSymlink creates a symbolic link at link pointing to target,
// creating the link's parent directory if needed.
func CreateSymlink(target, link string) error {
	if err := os.MkdirAll(filepath.Dir(link), 0755); err != nil {
		return fmt.Errorf("creating parent directory for %s: %w", link, err)
	}
	return os.Symlink(target, link)
}

// ReplaceSymlink removes whatever sits at link (symlink or file) and
// creates a fresh symlink to target.
func ReplaceSymlink(target, link string) error {
	if err := os.Remove(link); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing %s: %w", link, err)
	}
	return CreateSymlink(target, link)
}

// ReadSymlinkTarget returns the target of a symlink.
func ReadSymlinkTarget(path string) (string, error) {
	return os.Readlink(path)
}

// IsSymlink reports whether path exists and is a symbolic link.
func IsSymlink(path string) bool {
	info, err := os.Lstat(path)
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeSymlink != 0
}

// IsBrokenSymlink reports whether path is a symlink whose target does
// not exist.
func IsBrokenSymlink(path string) bool {
	if !IsSymlink(path) {
		return false
	}
	target, err := os.Readlink(path)
	if err != nil {
		return true
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(path), target)
	}
	_, err = os.Stat(target)
	return os.IsNotExist(err)
}

// BackupFile renames path to path+suffix. An existing backup with the
// same name is overwritten.
func BackupFile(path, suffix string) (string, error) {
	backup := path + suffix
	if err := os.Remove(backup); err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("removing stale backup %s: %w", backup, err)
	}
	if err := os.Rename(path, backup); err != nil {
		return "", fmt.Errorf("backing up %s: %w", path, err)
	}
	return backup, nil
}
