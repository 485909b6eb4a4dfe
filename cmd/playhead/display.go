package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// displayTitle tidies titles that are really filenames or identifier slugs:
// separators become spaces and the result is title-cased. Titles that already
// contain spaces are shown as stored.
func displayTitle(title string) string {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "(untitled)"
	}
	if strings.ContainsRune(trimmed, ' ') {
		return trimmed
	}
	if !strings.ContainsAny(trimmed, "-_.") {
		return trimmed
	}

	cleaned := strings.Builder{}
	prevSpace := false
	for _, r := range trimmed {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			cleaned.WriteRune(r)
			prevSpace = false
		case r == '-' || r == '_' || r == '.':
			if !prevSpace {
				cleaned.WriteRune(' ')
				prevSpace = true
			}
		}
	}
	result := strings.TrimSpace(cleaned.String())
	if result == "" {
		return trimmed
	}
	return cases.Title(language.Und).String(result)
}

// formatSeconds renders a seconds count as h:mm:ss or m:ss.
func formatSeconds(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds + 0.5)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%d:%02d", minutes, secs)
}

func formatPercent(fraction float64) string {
	return fmt.Sprintf("%.0f%%", fraction*100)
}

func printJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
