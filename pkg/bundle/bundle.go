// Package bundle packs several study documents into one zip archive.
package bundle

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"
	"time"
)

type Entry struct {
	Name     string
	Modified time.Time
	Data     []byte
}

// Write streams entries into a zip archive on w. Names must be unique
// relative paths.
func Write(w io.Writer, entries []Entry) error {
	zw := zip.NewWriter(w)
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		name := path.Clean(strings.TrimLeft(strings.ReplaceAll(e.Name, "\\", "/"), "/"))
		if name == "." || name == ".." || strings.HasPrefix(name, "../") {
			return fmt.Errorf("bundle: invalid entry name %q", e.Name)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("bundle: duplicate entry %q", name)
		}
		seen[name] = struct{}{}

		hdr := &zip.FileHeader{Name: name, Method: zip.Deflate, Modified: e.Modified}
		fw, err := zw.CreateHeader(hdr)
		if err != nil {
			return fmt.Errorf("bundle: create %s: %w", name, err)
		}
		if _, err := fw.Write(e.Data); err != nil {
			return fmt.Errorf("bundle: write %s: %w", name, err)
		}
	}
	return zw.Close()
}

// Archive returns the zip archive of entries as bytes.
func Archive(entries []Entry) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := Write(buf, entries); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
