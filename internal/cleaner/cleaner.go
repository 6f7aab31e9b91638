// Package cleaner reduces a model completion to best-effort code only.
package cleaner

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	// First fenced block, optionally tagged with a language such as c#, c++ or objective-c.
	fencedBlock = regexp.MustCompile("```(?:[\\w#+.-]+)?\\s*\\n([\\s\\S]+?)\\n```")

	// Conversational openers the model prepends or appends to code.
	narration = regexp.MustCompile(`^(Here's|This is|I'll|Note:|Let me|The code|As requested|This code)`)

	// Comment patterns run on lines with leading whitespace already removed.
	hashComment   = regexp.MustCompile(`^#`)
	cStyleComment = regexp.MustCompile(`^(/\*|\*/|//)`)
	sqlComment    = regexp.MustCompile(`^(--|/\*|\*/)`)
	phpComment    = regexp.MustCompile(`^(/\*|\*/|//|#)`)
	anyComment    = regexp.MustCompile(`^(#|//|/\*|\*/|--)`)
)

// commentLines maps a lower-cased language id to the pattern of a full-line
// comment. Unknown ids use anyComment.
var commentLines = map[string]*regexp.Regexp{
	"python":      hashComment,
	"ruby":        hashComment,
	"r":           hashComment,
	"bash":        hashComment,
	"shellscript": hashComment,
	"powershell":  hashComment,
	"javascript":  cStyleComment,
	"typescript":  cStyleComment,
	"java":        cStyleComment,
	"c":           cStyleComment,
	"cpp":         cStyleComment,
	"csharp":      cStyleComment,
	"go":          cStyleComment,
	"rust":        cStyleComment,
	"swift":       cStyleComment,
	"kotlin":      cStyleComment,
	"sql":         sqlComment,
	"php":         phpComment,
}

// CommentPattern returns the full-line comment pattern for languageID.
func CommentPattern(languageID string) *regexp.Regexp {
	if re, ok := commentLines[strings.ToLower(strings.TrimSpace(languageID))]; ok {
		return re
	}
	return anyComment
}

// Clean extracts the first fenced block if there is one, then drops narration
// and full-line comment lines. Inline trailing comments are kept. Clean never
// fails and is idempotent on its own output.
func Clean(text, languageID string) string {
	if m := fencedBlock.FindStringSubmatch(text); m != nil {
		text = m[1]
	}

	comment := CommentPattern(languageID)
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		// Leading whitespace is trimmed with the same predicate as the final
		// TrimSpace so a line exposed by it is judged the same on a second pass.
		trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
		if narration.MatchString(trimmed) || comment.MatchString(trimmed) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}
