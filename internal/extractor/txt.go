package extractor

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// textMarkers are the substrings of a declared media type that mark a file
// as readable text. Anything else is treated as binary.
var textMarkers = []string{"text", "csv", "json"}

// IsText reports whether a file with the declared media type should be
// decoded and inlined. The declared type is trusted as-is; content is never
// sniffed.
func IsText(mimeType string) bool {
	mimeType = strings.ToLower(mimeType)
	for _, marker := range textMarkers {
		if strings.Contains(mimeType, marker) {
			return true
		}
	}
	return false
}

// DecodeText turns raw file bytes into a string. BOM-marked UTF-8 and UTF-16
// are honoured, valid UTF-8 passes through, and anything else is read as
// Windows-1252.
func DecodeText(data []byte) string {
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		return string(data[3:])
	}

	if len(data) >= 2 && data[0] == 0xFF && data[1] == 0xFE {
		if decoded, err := decode(unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder(), data); err == nil {
			return decoded
		}
	}

	if len(data) >= 2 && data[0] == 0xFE && data[1] == 0xFF {
		if decoded, err := decode(unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder(), data); err == nil {
			return decoded
		}
	}

	if utf8.Valid(data) {
		return string(data)
	}

	if decoded, err := decode(charmap.Windows1252.NewDecoder(), data); err == nil {
		return decoded
	}

	return strings.ToValidUTF8(string(data), "�")
}

func decode(t transform.Transformer, data []byte) (string, error) {
	decoded, _, err := transform.Bytes(t, data)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}
