package matching

import "strings"

// isWordByte reports whether b continues a word for boundary checks.
// Symbols such as + # . are not word bytes, so c++ and c# end on a boundary.
func isWordByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9')
}

func boundedAt(text string, start, end int) bool {
	if start > 0 && isWordByte(text[start-1]) {
		return false
	}
	if end < len(text) && isWordByte(text[end]) {
		return false
	}
	return true
}

// wordOccurrences returns the [start, end) offsets of every whole-word
// occurrence of word in text. Both must be normalized.
func wordOccurrences(text, word string) [][2]int {
	if word == "" {
		return nil
	}

	var spans [][2]int
	for from := 0; from < len(text); {
		idx := strings.Index(text[from:], word)
		if idx < 0 {
			break
		}
		start := from + idx
		end := start + len(word)
		if boundedAt(text, start, end) {
			spans = append(spans, [2]int{start, end})
		}
		from = start + 1
	}
	return spans
}
