// Package scanner discovers localization string keys in human-authored mod
// sources: script files and UI configuration XML. Discovered keys are fed to
// the string-table merge engine as abbreviated records.
package scanner

// ScannedKey is one discovered localization key.
type ScannedKey struct {
	// Key is the localization key as it appears in the source.
	Key string
	// File is the source file path.
	File string
	// Line is the 1-based line number, or 0 when not line-addressable.
	Line int
}

// Scanner is the interface for all source-format key scanners.
type Scanner interface {
	// CanScan returns true if this scanner handles the given file extension.
	CanScan(ext string) bool
	// Scan extracts localization keys from a file. The filter, when
	// non-empty, is a key prefix scanned keys must carry.
	Scan(filePath, filter string) ([]ScannedKey, error)
}
