package extract

import (
	"bytes"
	"encoding/json"
	"strings"
)

// JSONObject finds the first JSON object embedded in text and decodes it.
// It returns false when no candidate parses.
func JSONObject(text string) (map[string]any, bool) {
	return Decode[map[string]any](text)
}

// Decode finds the first JSON object in text that decodes into T. When keys
// are given, a candidate must also carry at least one of them at the top
// level; this keeps a nested fragment (a single finding, say) from being
// mistaken for the whole answer.
//
// Each attempt decodes into a fresh value so a failed candidate never leaks
// partial fields.
func Decode[T any](text string, keys ...string) (T, bool) {
	for _, candidate := range Candidates(text) {
		if len(keys) > 0 && !hasAnyKey(candidate, keys) {
			continue
		}
		var out T
		if err := json.Unmarshal([]byte(candidate), &out); err == nil {
			return out, true
		}
	}
	var zero T
	return zero, false
}

// Candidates returns the substrings of text that may hold a JSON object, in
// the order Decode tries them:
//
//  1. every balanced {...} span, scanning left to right. A span that is valid
//     JSON (or becomes valid once trailing commas are dropped) is taken whole
//     and its inner objects are skipped; an invalid span is searched for
//     nested objects instead.
//  2. the greedy span from the first '{' to the last '}'.
//
// Only syntactically valid JSON objects are returned.
func Candidates(text string) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(s string) bool {
		if !isObject(s) {
			return false
		}
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
		return true
	}

	for start := 0; start < len(text); {
		open := strings.IndexByte(text[start:], '{')
		if open < 0 {
			break
		}
		open += start
		end := matchingBrace(text, open)
		if end < 0 {
			start = open + 1
			continue
		}
		span := text[open : end+1]
		if add(span) || add(stripTrailingCommas(span)) {
			start = end + 1
			continue
		}
		start = open + 1
	}

	first := strings.IndexByte(text, '{')
	last := strings.LastIndexByte(text, '}')
	if first >= 0 && last > first {
		greedy := text[first : last+1]
		if !add(greedy) {
			add(stripTrailingCommas(greedy))
		}
	}
	return out
}

// matchingBrace returns the index of the '}' closing the '{' at open, or -1.
// Braces inside JSON strings are ignored.
func matchingBrace(text string, open int) int {
	depth := 0
	inString := false
	escaped := false
	for i := open; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// stripTrailingCommas drops a ',' that is followed only by whitespace and a
// closing '}' or ']', outside of strings. Models produce these constantly.
func stripTrailingCommas(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			b.WriteByte(c)
			continue
		}
		if c == '"' {
			inString = true
		}
		if c == ',' {
			j := i + 1
			for j < len(s) && strings.IndexByte(" \t\r\n", s[j]) >= 0 {
				j++
			}
			if j < len(s) && (s[j] == '}' || s[j] == ']') {
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

func isObject(s string) bool {
	b := []byte(s)
	return json.Valid(b) && bytes.HasPrefix(bytes.TrimSpace(b), []byte("{"))
}

func hasAnyKey(object string, keys []string) bool {
	var top map[string]json.RawMessage
	if err := json.Unmarshal([]byte(object), &top); err != nil {
		return false
	}
	for _, k := range keys {
		if _, ok := top[k]; ok {
			return true
		}
	}
	return false
}
