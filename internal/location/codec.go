// Package location derives record keys and photo paths from plot
// coordinates (section, row, spot) and parses the row and spot labels so
// they can be ordered the way people read them.
package location

import (
	"strconv"
	"strings"
)

// KeySeparator joins the parts of a record key.
const KeySeparator = "_"

// PhotoDir is the directory prefix of photo references.
const PhotoDir = "images"

// DeriveKey builds the grouping key of a plot. Empty parts are skipped, so a
// plot with only a section yields the bare section name. The key does not
// record which part was empty: ("A", "3", "") and ("A", "", "3") share "A_3".
func DeriveKey(section, row, spot string) string {
	return joinNonEmpty(KeySeparator, section, row, spot)
}

// Label joins the non-empty parts with spaces for display, e.g. "A II 12a".
func Label(section, row, spot string) string {
	return joinNonEmpty(" ", section, row, spot)
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

// PhotoKey builds the file-name stem used for plot photos. Unlike DeriveKey
// it always contains all three parts, so "A", "", "3" becomes "A__3".
func PhotoKey(section, row, spot string) string {
	return section + KeySeparator + row + KeySeparator + spot
}

// PhotoRefs returns the primary photo and plaque photo paths of a plot.
func PhotoRefs(section, row, spot string) [2]string {
	stem := PhotoDir + "/" + PhotoKey(section, row, spot)
	return [2]string{stem + "_1.jpg", stem + "_2.jpg"}
}

var romanValues = map[byte]int{
	'I': 1,
	'V': 5,
	'X': 10,
	'L': 50,
	'C': 100,
}

func romanValue(c byte) int {
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	return romanValues[c]
}

// ParseRoman converts a row label written in Roman numerals (I, V, X, L, C)
// to an integer. A symbol smaller than its successor is subtracted. Unknown
// symbols count as zero and malformed numerals are not rejected.
func ParseRoman(s string) int {
	result := 0
	for i := 0; i < len(s); i++ {
		cur := romanValue(s[i])
		next := 0
		if i+1 < len(s) {
			next = romanValue(s[i+1])
		}
		if cur < next {
			result -= cur
		} else {
			result += cur
		}
	}
	return result
}

// PlotSpot is a spot label split into its numeric part and trailing suffix.
type PlotSpot struct {
	Number int    `json:"number"`
	Suffix string `json:"suffix"`
}

// ParsePlotSpot splits "12a" into {12, "a"}. Labels without leading digits
// yield Number 0 and the whole lowercased label as Suffix.
func ParsePlotSpot(s string) PlotSpot {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return PlotSpot{Suffix: strings.ToLower(s)}
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		// Digit run too long for an int.
		return PlotSpot{Suffix: strings.ToLower(s)}
	}
	return PlotSpot{Number: n, Suffix: strings.ToLower(s[end:])}
}
