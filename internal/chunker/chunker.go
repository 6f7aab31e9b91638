package chunker

import (
	"strings"
	"unicode/utf8"
)

// Chunk represents a contiguous run of lines taken from a file
type Chunk struct {
	Content   string `json:"content"`
	StartLine int    `json:"start_line"` // 1-based
	EndLine   int    `json:"end_line"`
	Tokens    int    `json:"tokens"`
	// Cursor is the 0-based cursor line relative to StartLine. It is clamped
	// into the chunk when the content was windowed and passed through otherwise.
	Cursor    int    `json:"cursor"`
}

// Window returns the part of content that fits maxTokens, centered on
// cursorLine (0-based). Content that already fits, or maxTokens <= 0, is
// returned whole. At least the cursor line is always included.
func Window(content string, cursorLine, maxTokens int) Chunk {
	lines := strings.Split(content, "\n")
	tokens := EstimateTokens(content)
	if maxTokens <= 0 || tokens <= maxTokens {
		return Chunk{
			Content:   content,
			StartLine: 1,
			EndLine:   len(lines),
			Tokens:    tokens,
			Cursor:    cursorLine,
		}
	}

	cursor := cursorLine
	if cursor < 0 {
		cursor = 0
	}
	if cursor >= len(lines) {
		cursor = len(lines) - 1
	}

	budget := runeBudget(maxTokens)
	start, end := cursor, cursor+1
	used := utf8.RuneCountInString(lines[cursor])

	// Grow below then above the cursor, one line at a time, until neither side fits.
	for {
		grew := false
		if end < len(lines) {
			if cost := utf8.RuneCountInString(lines[end]) + 1; used+cost <= budget {
				used += cost
				end++
				grew = true
			}
		}
		if start > 0 {
			if cost := utf8.RuneCountInString(lines[start-1]) + 1; used+cost <= budget {
				used += cost
				start--
				grew = true
			}
		}
		if !grew {
			break
		}
	}

	window := strings.Join(lines[start:end], "\n")
	return Chunk{
		Content:   window,
		StartLine: start + 1,
		EndLine:   end,
		Tokens:    EstimateTokens(window),
		Cursor:    cursor - start,
	}
}

// EstimateTokens provides a rough estimate of token count.
// Code runs at about 3 characters per token, plus padding for special tokens.
func EstimateTokens(text string) int {
	return utf8.RuneCountInString(text)/3 + 10
}

// runeBudget inverts EstimateTokens.
func runeBudget(maxTokens int) int {
	if maxTokens <= 10 {
		return 0
	}
	return (maxTokens-10)*3 + 2
}
