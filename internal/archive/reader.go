package archive

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/klauspost/compress/flate"
	"github.com/rs/zerolog/log"

	"github.com/zipmint/archive-renamer/internal/domain"
)

// Reader parses uploaded ZIP containers into ordered entry listings. Only
// the central directory is read; member content is never extracted, so a
// listing run is cheap even for large payloads.
type Reader struct {
	maxEntries int
}

// NewReader creates a Reader that rejects containers listing more than
// maxEntries members. A zero or negative limit disables the cap.
func NewReader(maxEntries int) *Reader {
	return &Reader{maxEntries: maxEntries}
}

// ReadListing parses the container's central directory and returns its
// members in directory order. Paths are kept exactly as stored; sizes come
// from the uncompressed length field and are zero for directories.
func (r *Reader) ReadListing(ctx context.Context, src io.ReaderAt, size int64) ([]domain.ArchiveEntry, error) {
	zr, err := zip.NewReader(src, size)
	if err != nil {
		return nil, domain.NewAppErrorWithCause(
			domain.ErrArchiveInvalid,
			"uploaded file is not a readable ZIP container",
			http.StatusUnprocessableEntity,
			err,
			nil,
		)
	}
	zr.RegisterDecompressor(zip.Deflate, func(cr io.Reader) io.ReadCloser {
		return flate.NewReader(cr)
	})

	if r.maxEntries > 0 && len(zr.File) > r.maxEntries {
		return nil, domain.NewAppError(
			domain.ErrArchiveTooLarge,
			fmt.Sprintf("container lists %d entries, limit is %d", len(zr.File), r.maxEntries),
			http.StatusRequestEntityTooLarge,
			map[string]int{"entries": len(zr.File), "limit": r.maxEntries},
		)
	}

	entries := make([]domain.ArchiveEntry, 0, len(zr.File))
	for i, file := range zr.File {
		if i%1024 == 0 {
			select {
			case <-ctx.Done():
				return nil, domain.NewAppErrorWithCause(
					domain.ErrTimeout,
					"listing read canceled",
					http.StatusRequestTimeout,
					ctx.Err(),
					nil,
				)
			default:
			}
		}

		if file.Name == "" {
			continue
		}

		entry := domain.ArchiveEntry{
			Path:        file.Name,
			IsDirectory: file.FileInfo().IsDir(),
		}
		if !entry.IsDirectory {
			entry.Size = int64(file.UncompressedSize64)
		}
		entries = append(entries, entry)
	}

	log.Debug().
		Int("entries", len(entries)).
		Int64("payload_bytes", size).
		Msg("Read container listing")

	return entries, nil
}
