// Package wordlist provides word list filtering helpers.
package wordlist

import (
	"fmt"
	"strings"
)

// FilterFunc returns true when a word should be kept.
type FilterFunc func(string) bool

// FilterForLang returns a language-specific filter for word lists.
func FilterForLang(lang string) FilterFunc {
	switch strings.ToLower(lang) {
	case "en":
		return filterEnglishASCII
	default:
		return func(string) bool { return true }
	}
}

// Validate checks that a pool is non-empty and made of lowercase English words.
func Validate(words []string) error {
	if len(words) == 0 {
		return fmt.Errorf("word list is empty")
	}
	filter := FilterForLang("en")
	for i, word := range words {
		if !filter(word) {
			return fmt.Errorf("word %d (%q) is not lowercase ascii", i+1, word)
		}
	}
	return nil
}

func filterEnglishASCII(word string) bool {
	if word == "" {
		return false
	}
	for i := 0; i < len(word); i++ {
		ch := word[i]
		if ch < 'a' || ch > 'z' {
			return false
		}
	}
	return true
}
