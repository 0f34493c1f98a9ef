// pkg/archive/detect.go
package archive

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

var (
	zipMagic = []byte("PK\x03\x04")
	// an archive holding nothing but an end-of-central-directory record
	emptyZipMagic = []byte("PK\x05\x06")
	xzMagic       = []byte{0xFD, '7', 'z', 'X', 'Z', 0x00}
)

// DetectFormat sniffs the container format from the file's leading bytes
func DetectFormat(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening archive: %w", err)
	}
	defer f.Close()

	head := make([]byte, len(xzMagic))
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF {
		return "", fmt.Errorf("reading archive header: %w", err)
	}
	head = head[:n]

	switch {
	case bytes.HasPrefix(head, zipMagic), bytes.HasPrefix(head, emptyZipMagic):
		return FormatZip, nil
	case bytes.HasPrefix(head, xzMagic):
		return FormatTarXz, nil
	default:
		return "", fmt.Errorf("unrecognized archive format")
	}
}
