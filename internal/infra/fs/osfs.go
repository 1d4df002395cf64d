package fs

import (
	"io"
	"os"

	"gitlab.com/tozd/go/errors"
)

var (
	ErrSameFile    = errors.Base("source and destination are the same file")
	ErrIsDirectory = errors.Base("source is a directory")
)

type OSFS struct{}

func (OSFS) Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// ReadDirNames returns entry names in directory order, unsorted.
func (OSFS) ReadDirNames(dir string) ([]string, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.Readdirnames(-1)
}

// CopyFile copies contents, permission bits and modification time from src to
// dst, truncating any existing dst. The parent of dst must already exist.
func (OSFS) CopyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return errors.Errorf("%w: %s", ErrIsDirectory, src)
	}
	if dstInfo, err := os.Stat(dst); err == nil && os.SameFile(info, dstInfo) {
		return errors.Errorf("%w: %s", ErrSameFile, dst)
	}

	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	dstFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		dstFile.Close()
		return errors.Errorf("writing %s: %w", dst, err)
	}
	if err := dstFile.Sync(); err != nil {
		dstFile.Close()
		return errors.Errorf("syncing %s: %w", dst, err)
	}
	if err := dstFile.Close(); err != nil {
		return errors.Errorf("closing %s: %w", dst, err)
	}

	// O_CREATE honours umask and leaves the mode of an existing file alone.
	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return err
	}
	mtime := info.ModTime()
	if err := os.Chtimes(dst, mtime, mtime); err != nil {
		return err
	}
	return nil
}
