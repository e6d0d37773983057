// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import "strings"

// JoinAuthors collapses a list of already-formatted author names into the
// display string: "Unknown Author" for none, the single name for one,
// "A and B" for two, and "first et al." for three or more.
func JoinAuthors(formatted []string) string {
	switch len(formatted) {
	case 0:
		return "Unknown Author"
	case 1:
		return formatted[0]
	case 2:
		return formatted[0] + " and " + formatted[1]
	default:
		return formatted[0] + " et al."
	}
}

// FormatNameFirstLast converts a "First Middle Surname" name to the
// initialed form "F. Middle Surname". Single-token names pass through.
func FormatNameFirstLast(name string) string {
	parts := strings.Fields(name)
	if len(parts) < 2 {
		return name
	}
	return initialOf(parts[0]) + ". " + strings.Join(parts[1:], " ")
}

func initialOf(s string) string {
	for _, r := range s {
		return string(r)
	}
	return s
}

// venueAbbreviations maps common venue words to their IEEE-style short
// forms.
var venueAbbreviations = map[string]string{
	"Journal":        "J.",
	"Proceedings":    "Proc.",
	"Conference":     "Conf.",
	"International":  "Int.",
	"Transactions":   "Trans.",
	"Society":        "Soc.",
	"Research":       "Res.",
	"Engineering":    "Eng.",
	"Computer":       "Comput.",
	"Science":        "Sci.",
	"Technology":     "Technol.",
	"Intelligence":   "Intell.",
	"Communications": "Commun.",
}

// AbbreviateVenue rewrites a venue name word by word using the
// abbreviation table. A trailing comma on an abbreviated word is dropped.
// Empty input becomes "Unknown Venue".
func AbbreviateVenue(venue string) string {
	if venue == "" {
		return "Unknown Venue"
	}
	words := strings.Fields(venue)
	for i, w := range words {
		if abbrev, ok := venueAbbreviations[strings.Trim(w, ",")]; ok {
			words[i] = abbrev
		}
	}
	return strings.Join(words, " ")
}
