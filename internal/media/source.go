// Package media abstracts access to media files and their siblings.
package media

// Source provides file access for subtitle discovery and loading.
// Implementations must be safe for concurrent use.
type Source interface {
	// ReadFile returns the raw bytes behind a locator.
	ReadFile(locator string) ([]byte, error)

	// ListSiblings returns the paths of files in the same directory as
	// the media file, including the media file itself.
	ListSiblings(mediaLocator string) ([]string, error)

	// DetectEncoding sniffs a best-effort charset name for raw text bytes.
	DetectEncoding(data []byte) string
}
