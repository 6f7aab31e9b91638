// Package structural finds purely syntactic defects in source text without a
// model. Findings use the same shape as model findings so the two can be
// concatenated.
package structural

import (
	"fmt"
	"strings"

	"github.com/kmitofficial/CodeGenie-G372-PS25/internal/report"
)

// FindingType is the type reported on every structural finding.
const FindingType = "syntax"

var (
	closerFor = map[byte]byte{'(': ')', '[': ']', '{': '}'}
	openerFor = map[byte]byte{')': '(', ']': '[', '}': '{'}
)

// syntax is the little lexical knowledge needed to avoid counting brackets
// that sit inside strings or comments.
type syntax struct {
	lineComments []string
	wordHash     bool // # starts a comment only at line start or after blanks
	blockComment bool // /* ... */
	singleQuotes bool // '...' is a string or char literal
	backticks    bool // `...` may span lines
}

var (
	hashSyntax    = syntax{lineComments: []string{"#"}, singleQuotes: true}
	shellSyntax   = syntax{wordHash: true, singleQuotes: true} // ${#arr[@]} and $# are not comments
	cssSyntax     = syntax{blockComment: true, singleQuotes: true}
	scssSyntax    = syntax{lineComments: []string{"//"}, blockComment: true, singleQuotes: true}
	cSyntax       = syntax{lineComments: []string{"//"}, blockComment: true, singleQuotes: true}
	scriptSyntax  = syntax{lineComments: []string{"//"}, blockComment: true, singleQuotes: true, backticks: true}
	rustSyntax    = syntax{lineComments: []string{"//"}, blockComment: true} // lifetimes ('a) never close
	sqlSyntax     = syntax{lineComments: []string{"--"}, blockComment: true, singleQuotes: true}
	phpSyntax     = syntax{lineComments: []string{"//", "#"}, blockComment: true, singleQuotes: true}
	genericSyntax = syntax{lineComments: []string{"//"}, blockComment: true, singleQuotes: true}
)

var languages = map[string]syntax{
	"python":      hashSyntax,
	"ruby":        hashSyntax,
	"r":           hashSyntax,
	"bash":        shellSyntax,
	"shellscript": shellSyntax,
	"sh":          shellSyntax,
	"zsh":         shellSyntax,
	"powershell":  shellSyntax,
	"javascript":  scriptSyntax,
	"typescript":  scriptSyntax,
	"go":          scriptSyntax,
	"java":        cSyntax,
	"c":           cSyntax,
	"cpp":         cSyntax,
	"csharp":      cSyntax,
	"swift":       cSyntax,
	"kotlin":      cSyntax,
	"rust":        rustSyntax,
	"sql":         sqlSyntax,
	"php":         phpSyntax,
	"css":         cssSyntax,
	"scss":        scssSyntax,
	"less":        scssSyntax,
}

func syntaxFor(languageID string) syntax {
	if s, ok := languages[strings.ToLower(strings.TrimSpace(languageID))]; ok {
		return s
	}
	return genericSyntax
}

type opener struct {
	char byte
	line int
}

// Analyze reports unbalanced brackets, parentheses and braces in code.
// Every finding has severity "high". Balanced code yields no findings.
func Analyze(code, languageID string) []report.Finding {
	syn := syntaxFor(languageID)

	var (
		findings []report.Finding
		stack    []opener
		inBlock  bool
		multi    string // open multi-line string delimiter
	)

	for idx, line := range strings.Split(code, "\n") {
		lineNo := idx + 1
		var quote byte

	scan:
		for i := 0; i < len(line); i++ {
			c := line[i]
			rest := line[i:]

			if inBlock {
				if strings.HasPrefix(rest, "*/") {
					inBlock = false
					i++
				}
				continue
			}
			if multi != "" {
				if c == '\\' && multi != "`" {
					i++
					continue
				}
				if strings.HasPrefix(rest, multi) {
					i += len(multi) - 1
					multi = ""
				}
				continue
			}
			if quote != 0 {
				if c == '\\' {
					i++
				} else if c == quote {
					quote = 0
				}
				continue
			}

			if syn.wordHash && c == '#' && (i == 0 || line[i-1] == ' ' || line[i-1] == '\t') {
				break scan
			}
			for _, marker := range syn.lineComments {
				if strings.HasPrefix(rest, marker) {
					break scan
				}
			}
			switch {
			case syn.blockComment && strings.HasPrefix(rest, "/*"):
				inBlock = true
				i++
				continue
			case strings.HasPrefix(rest, `"""`):
				multi = `"""`
				i += 2
				continue
			case syn.singleQuotes && strings.HasPrefix(rest, "'''"):
				multi = "'''"
				i += 2
				continue
			case syn.backticks && c == '`':
				multi = "`"
				continue
			case c == '"' || (syn.singleQuotes && c == '\''):
				quote = c
				continue
			}

			if _, ok := closerFor[c]; ok {
				stack = append(stack, opener{char: c, line: lineNo})
				continue
			}
			want, ok := openerFor[c]
			if !ok {
				continue
			}
			if len(stack) == 0 {
				findings = append(findings, unmatchedCloser(c, lineNo))
				continue
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if top.char != want {
				findings = append(findings, mismatched(top, c, lineNo))
			}
		}
	}

	for _, o := range stack {
		findings = append(findings, unclosed(o))
	}
	return findings
}

func unmatchedCloser(c byte, line int) report.Finding {
	return newFinding(line,
		fmt.Sprintf("Unmatched closing '%c' on line %d", c, line),
		fmt.Sprintf("Remove the extra '%c' or add the matching '%c' before it", c, openerFor[c]))
}

func mismatched(o opener, c byte, line int) report.Finding {
	return newFinding(line,
		fmt.Sprintf("Mismatched '%c' on line %d: expected '%c' to close '%c' opened on line %d", c, line, closerFor[o.char], o.char, o.line),
		fmt.Sprintf("Replace '%c' with '%c' or close the '%c' from line %d first", c, closerFor[o.char], o.char, o.line))
}

func unclosed(o opener) report.Finding {
	return newFinding(o.line,
		fmt.Sprintf("Unclosed '%c' opened on line %d", o.char, o.line),
		fmt.Sprintf("Add a matching '%c' to close the '%c' opened on line %d", closerFor[o.char], o.char, o.line))
}

func newFinding(line int, description, fix string) report.Finding {
	return report.Finding{
		Type:        FindingType,
		Line:        line,
		Description: description,
		Fix:         fix,
		Severity:    report.SeverityHigh,
	}
}
