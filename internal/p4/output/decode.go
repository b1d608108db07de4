package output

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Decode returns b as UTF-8 text. The CLI writes raw bytes in the server's
// charset when unicode mode is off; anything that is not valid UTF-8 is
// taken to be Windows-1252, which maps every byte.
func Decode(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	s, err := charmap.Windows1252.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(s)
}
