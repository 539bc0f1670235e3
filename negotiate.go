package gzipbody

import (
	"strings"
)

// acceptsGzip reports whether the Accept-Encoding value admits gzip. The leftmost
// gzip or * token decides, and only a directly attached quality group of an
// explicit zero (;q=0, ;q=0.0 and so on) refuses. Everything else, a missing
// token included, keeps the answer positive: a client naming gzip with a broken
// quality still named gzip. No token at all refuses.
func acceptsGzip(header string) bool {
	for i := 0; i < len(header); i++ {
		switch header[i] {
		case '*':
			return !zeroQuality(header[i+1:])
		case 'g':
			if strings.HasPrefix(header[i:], "gzip") {
				return !zeroQuality(header[i+4:])
			}
		}
	}

	return false
}

// zeroQuality reports whether rest begins with a ;q= group explicitly zeroing
// the quality. The group is a run of digits with an optional fraction, anything
// else right after ;q= means there's no group at all.
func zeroQuality(rest string) bool {
	if !strings.HasPrefix(rest, ";q=") {
		return false
	}

	quality := rest[len(";q="):]
	end := 0
	for end < len(quality) && isDigit(quality[end]) {
		end++
	}
	if end == 0 {
		return false
	}

	if end < len(quality) && quality[end] == '.' {
		fraction := end + 1
		for fraction < len(quality) && isDigit(quality[fraction]) {
			fraction++
		}
		// a trailing dot with no digits isn't a part of the group
		if fraction > end+1 {
			end = fraction
		}
	}

	switch quality[:end] {
	case "0", "0.0", "0.00", "0.000":
		return true
	default:
		return false
	}
}

func isDigit(char byte) bool {
	return char >= '0' && char <= '9'
}
