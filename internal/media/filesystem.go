package media

import (
	"path/filepath"
	"unicode/utf8"

	"github.com/spf13/afero"
)

// FilesystemSource reads media siblings from a filesystem.
type FilesystemSource struct {
	fs afero.Fs
}

// Verify FilesystemSource implements Source at compile time.
var _ Source = (*FilesystemSource)(nil)

// NewFilesystemSource creates a source over the given filesystem.
func NewFilesystemSource(fs afero.Fs) *FilesystemSource {
	return &FilesystemSource{fs: fs}
}

// ReadFile returns the contents of the file at path.
func (s *FilesystemSource) ReadFile(locator string) ([]byte, error) {
	return afero.ReadFile(s.fs, locator)
}

// ListSiblings returns the paths of regular files sharing the media
// file's directory.
func (s *FilesystemSource) ListSiblings(mediaLocator string) ([]string, error) {
	dir := filepath.Dir(mediaLocator)
	infos, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, info := range infos {
		if info.IsDir() {
			continue
		}
		paths = append(paths, filepath.Join(dir, info.Name()))
	}
	return paths, nil
}

// DetectEncoding sniffs the charset of raw text bytes: a BOM wins, valid
// UTF-8 is taken at face value, anything else falls back to windows-1252
// (the usual legacy encoding for subtitle files in the wild).
func (s *FilesystemSource) DetectEncoding(data []byte) string {
	switch {
	case len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF:
		return "utf-8"
	case len(data) >= 2 && data[0] == 0xFF && data[1] == 0xFE:
		return "utf-16le"
	case len(data) >= 2 && data[0] == 0xFE && data[1] == 0xFF:
		return "utf-16be"
	case utf8.Valid(data):
		return "utf-8"
	default:
		return "windows-1252"
	}
}
