package exif

import (
	"context"
	"os"
	"time"

	goexif "github.com/rwcarlsen/goexif/exif"
	"gitlab.com/tozd/go/errors"
)

const exifLayout = "2006:01:02 15:04:05"

var ErrNoTimestamp = errors.Base("exif datetime not found")

type Reader struct{}

// DateTimeOriginal returns when the picture was taken, falling back to the
// DateTime tag when DateTimeOriginal is absent.
func (Reader) DateTimeOriginal(ctx context.Context, path string) (time.Time, error) {
	if err := ctx.Err(); err != nil {
		return time.Time{}, err
	}

	file, err := os.Open(path)
	if err != nil {
		return time.Time{}, err
	}
	defer file.Close()

	x, err := goexif.Decode(file)
	if err != nil {
		return time.Time{}, errors.Errorf("decoding exif in %s: %w", path, err)
	}

	if tag, err := x.Get(goexif.DateTimeOriginal); err == nil {
		if str, err := tag.StringVal(); err == nil {
			if parsed, err := time.ParseInLocation(exifLayout, str, time.Local); err == nil {
				return parsed, nil
			}
		}
	}

	if parsed, err := x.DateTime(); err == nil {
		return parsed, nil
	}

	return time.Time{}, ErrNoTimestamp
}
