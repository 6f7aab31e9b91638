package cleaner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		language string
		want     string
	}{
		{
			name:     "fenced python with trailing narration",
			text:     "```python\nx = 1\n```\nHere's the code",
			language: "python",
			want:     "x = 1",
		},
		{
			name:     "only the first fenced block survives",
			text:     "```js\nconst a = 1;\n```\ntext\n```js\nconst b = 2;\n```",
			language: "javascript",
			want:     "const a = 1;",
		},
		{
			name:     "untagged fence",
			text:     "Sure.\n```\nfmt.Println(1)\n```",
			language: "go",
			want:     "fmt.Println(1)",
		},
		{
			name:     "narration openers dropped",
			text:     "Here's the function:\ndef f():\n    return 1\nNote: it returns one\nThis code is simple\nAs requested.",
			language: "python",
			want:     "def f():\n    return 1",
		},
		{
			name:     "narration is case sensitive",
			text:     "here's lowercase\nx = 1",
			language: "python",
			want:     "here's lowercase\nx = 1",
		},
		{
			name:     "python full-line comments",
			text:     "# header\nx = 1  # inline stays\n    # indented comment\ny = 2",
			language: "Python",
			want:     "x = 1  # inline stays\ny = 2",
		},
		{
			name:     "c style comments",
			text:     "/* block\n * middle\n */\nint a = 1; // inline\n// full",
			language: "cpp",
			want:     "* middle\nint a = 1; // inline",
		},
		{
			name:     "hash is code in javascript",
			text:     "#!/usr/bin/env node\nconsole.log(1)",
			language: "javascript",
			want:     "#!/usr/bin/env node\nconsole.log(1)",
		},
		{
			name:     "sql dashes",
			text:     "-- select all\nSELECT * FROM t;",
			language: "sql",
			want:     "SELECT * FROM t;",
		},
		{
			name:     "php accepts hash and slashes",
			text:     "# a\n// b\necho 1;",
			language: "php",
			want:     "echo 1;",
		},
		{
			name:     "unknown language uses every marker",
			text:     "# a\n// b\n-- c\nvalue",
			language: "cobol",
			want:     "value",
		},
		{
			name:     "empty language falls back too",
			text:     "-- c\nvalue",
			language: "",
			want:     "value",
		},
		{
			name:     "nothing to strip returns the text trimmed",
			text:     "  x = compute()\n",
			language: "python",
			want:     "x = compute()",
		},
		{
			name:     "csharp fence tag",
			text:     "```c#\nvar x = 1;\n```\nHere's the code",
			language: "csharp",
			want:     "var x = 1;",
		},
		{
			name:     "cpp fence tag",
			text:     "```c++\nint main() {}\n```",
			language: "cpp",
			want:     "int main() {}",
		},
		{
			name:     "hyphenated fence tags",
			text:     "```objective-c\n[obj run];\n```\n```shell-session\n$ ls\n```",
			language: "c",
			want:     "[obj run];",
		},
		{
			name:     "shell-session fence tag",
			text:     "Run this:\n```shell-session\n$ ls -la\n```",
			language: "bash",
			want:     "$ ls -la",
		},
		{
			name:     "narration behind a non-breaking space",
			text:     "\u00a0Here's the code:\nx = 1",
			language: "python",
			want:     "x = 1",
		},
		{
			name:     "narration behind a carriage return",
			text:     "\rThe code// c",
			language: "go",
			want:     "",
		},
		{
			name:     "comment behind a vertical tab",
			text:     "\v# note\nx = 1",
			language: "python",
			want:     "x = 1",
		},
		{
			name:     "unterminated fence is left alone",
			text:     "```python\nx = 1",
			language: "python",
			want:     "```python\nx = 1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.text, tt.language))
		})
	}
}

func TestCleanIdempotent(t *testing.T) {
	inputs := []string{
		"```python\nx = 1\n```\nHere's the code",
		"   Here's indented narration\nx = 1",
		"\n\n  # comment\n  value = 2\n\n",
		"```\n```\nB\n```",
		"````\nA\n```",
		"text only",
		"",
		"```go\n\tif x {\n\t\treturn\n\t}\n```\nLet me explain",
		"\rThe code// c",
		"\u00a0Here's the code:\nx = 1",
		"\v// note\n\u00a0# other\n\r-- third\nvalue",
		"\u2003\nThis is it\ny = 1",
		"```c++\n\u00a0// c\nint x;\n```",
	}
	for _, lang := range []string{"python", "go", "sql", "unknown"} {
		for _, in := range inputs {
			once := Clean(in, lang)
			assert.Equal(t, once, Clean(once, lang), "lang=%s input=%q", lang, in)
		}
	}
}

func FuzzCleanIdempotent(f *testing.F) {
	seeds := []string{
		"```python\nx = 1\n```\nHere's the code",
		"\rThe code// c",
		"\u00a0Here's the code:\nx = 1",
		"\v# note\nx = 1",
		"```c#\nvar x = 1;\n```",
		"-- a\n\t\n  /* b */\nvalue",
	}
	for _, s := range seeds {
		f.Add(s, "python")
		f.Add(s, "unknown")
	}
	f.Fuzz(func(t *testing.T, text, language string) {
		once := Clean(text, language)
		if twice := Clean(once, language); twice != once {
			t.Fatalf("Clean(%q) = %q, cleaned again = %q", text, once, twice)
		}
	})
}

func TestCommentPatternTable(t *testing.T) {
	assert.Same(t, hashComment, CommentPattern("RUBY"))
	assert.Same(t, cStyleComment, CommentPattern("kotlin"))
	assert.Same(t, anyComment, CommentPattern("haskell"))
}
