// Package bundle packages prompts, agents and skill packs as zip archives.
package bundle

import (
	"archive/zip"
	"bytes"
	"fmt"
	"time"
)

// FileEntry is one file in an archive.
type FileEntry struct {
	Path    string
	Content []byte
}

// Archive is a named zip payload ready to be sent as a download.
type Archive struct {
	Filename string
	Data     []byte
}

// CreateZip writes files in the given order with a fixed modification time.
func CreateZip(files []FileEntry, modified time.Time) ([]byte, error) {
	if modified.IsZero() {
		modified = time.Unix(0, 0).UTC()
	}
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range files {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     f.Path,
			Method:   zip.Deflate,
			Modified: modified,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to add %s: %w", f.Path, err)
		}
		if _, err := w.Write(f.Content); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", f.Path, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize zip: %w", err)
	}
	return buf.Bytes(), nil
}

// ReadZip returns the archive's files keyed by path.
func ReadZip(data []byte) (map[string][]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	out := make(map[string][]byte, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		var b bytes.Buffer
		_, err = b.ReadFrom(rc)
		rc.Close()
		if err != nil {
			return nil, err
		}
		out[f.Name] = b.Bytes()
	}
	return out, nil
}
