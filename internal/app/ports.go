package app

import (
	"context"
	"time"
)

type FileSystem interface {
	Exists(path string) (bool, error)
	CopyFile(src, dst string) error
	ReadDirNames(dir string) ([]string, error)
}

type ExifReader interface {
	DateTimeOriginal(ctx context.Context, path string) (time.Time, error)
}
