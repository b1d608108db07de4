// Package pathutil canonicalises local and depot paths so they can be compared
// independent of separator style, case, or residual ".." segments.
package pathutil

import (
	"strings"
)

// DepotPrefix marks a server-side (depot) path.
const DepotPrefix = "//"

// Normalize returns the canonical form of path.
//
// Segments are split on both slash styles and ".." segments cancel the segment
// to their left; unpaired leading ".." segments are dropped. Depot paths keep
// their "//" prefix and are joined with forward slashes; everything else is
// joined with backslashes and a lone drive letter is upper-cased.
func Normalize(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return path
	}

	segments := strings.FieldsFunc(path, isSeparator)
	kept := make([]string, 0, len(segments))
	pending := 0
	for i := len(segments) - 1; i >= 0; i-- {
		switch {
		case segments[i] == "..":
			pending++
		case pending > 0:
			pending--
		default:
			kept = append(kept, segments[i])
		}
	}
	if len(kept) == 0 {
		return path
	}
	reverse(kept)

	if strings.HasPrefix(path, DepotPrefix) {
		return DepotPrefix + strings.Join(kept, "/")
	}
	if isLowerDrive(kept[0]) {
		kept[0] = strings.ToUpper(kept[0])
	}
	return strings.Join(kept, `\`)
}

// Equal reports whether two paths are the same after normalisation, ignoring case.
func Equal(a, b string) bool {
	return strings.EqualFold(Normalize(a), Normalize(b))
}

// IsDepotPath reports whether path is written in depot syntax ("//depot/...").
// A leading pair of backslashes (UNC) counts as well, since neither form names
// a local directory we can walk.
func IsDepotPath(path string) bool {
	return len(path) >= 2 && isSeparator(rune(path[0])) && isSeparator(rune(path[1]))
}

func isSeparator(r rune) bool {
	return r == '/' || r == '\\'
}

func isLowerDrive(segment string) bool {
	return len(segment) == 2 && segment[1] == ':' && segment[0] >= 'a' && segment[0] <= 'z'
}

func reverse(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
