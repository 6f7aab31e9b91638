// Package prompts renders each task and its inputs into the single
// instruction string sent to the model. Every JSON-producing prompt spells out
// the exact key set it expects; that text is the model's only contract.
package prompts

import (
	"fmt"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Completion asks for code to insert at cursorLine (0-based) of fileContent.
func Completion(instruction, fileContent string, cursorLine int, languageID string) string {
	return fmt.Sprintf(`You are a code completion assistant for the language: %s.
Based on the following code context and the user's request, generate the appropriate code.
Only respond with the code - no explanations, comments, or markdown formatting.

CODE CONTEXT:
%s
%s

The cursor is at line %d.
User request: %s

Respond only with the code to insert:
`, languageID, languageID, fileContent, cursorLine+1, instruction)
}

// Conversion asks for code translated from sourceLanguage to targetLanguage.
func Conversion(code, sourceLanguage, targetLanguage string) string {
	return fmt.Sprintf(`You are a code conversion assistant.
Convert the following %s code to %s.
Only respond with the converted code - no explanations, comments, or markdown formatting.

SOURCE CODE (%s):
%s

CONVERTED CODE (%s):
`, sourceLanguage, targetLanguage, sourceLanguage, code, targetLanguage)
}

// BugDetection asks for an issues report as JSON.
func BugDetection(code, languageID string) string {
	return fmt.Sprintf(`You are a code analysis assistant specializing in identifying bugs, vulnerabilities, and edge cases.
Analyze the following %s code for potential issues.

Your response MUST follow this exact JSON format:
{
  "issues": [
    {
      "type": "bug|edge_case|vulnerability|performance|logic",
      "line": line_number,
      "description": "Brief description of the issue",
      "fix": "Complete line or block of code that fixes the issue"
    }
  ],
  "summary": "Brief clear summary of all found issues, including their types and line numbers"
}

If no issues are found, return an empty issues array but still provide a summary.

CODE TO ANALYZE (%s):
%s

JSON RESPONSE:
`, languageID, languageID, code)
}

// Optimization asks for an optimizations report as JSON.
func Optimization(code, languageID string) string {
	return fmt.Sprintf(`You are a code optimization assistant specializing in improving code performance, readability, and efficiency.
Analyze the following %s code and suggest optimizations.

Your response MUST follow this exact JSON format:
{
  "optimizations": [
    {
      "type": "performance|readability|memory|complexity|structure",
      "line": line_number,
      "description": "Brief description of the optimization",
      "original": "The original code line or block",
      "optimized": "The optimized code"
    }
  ],
  "summary": "Brief summary of all optimizations and their expected benefits"
}

If no optimizations are needed, return an empty optimizations array but still provide a summary.

CODE TO OPTIMIZE (%s):
%s

JSON RESPONSE:
`, languageID, languageID, code)
}

// ProjectFiles renders files as "=== path ===" blocks in insertion order.
// Paths and contents are never truncated.
func ProjectFiles(files *orderedmap.OrderedMap[string, string]) string {
	if files == nil {
		return ""
	}
	var b strings.Builder
	for pair := files.Oldest(); pair != nil; pair = pair.Next() {
		fmt.Fprintf(&b, "=== %s ===\n%s\n\n", pair.Key, pair.Value)
	}
	return b.String()
}

// ProjectAnalysis asks for a whole-project report as JSON. projectFiles is
// the output of ProjectFiles.
func ProjectAnalysis(projectFiles string) string {
	return fmt.Sprintf(`You are a senior software architect reviewing an entire project.
Study the project files below, identify issues across files, and write documentation for the project.

Your response MUST follow this exact JSON format:
{
  "project_summary": {
    "title": "Project name",
    "description": "What the project does and who it is for",
    "technology_stack": ["language", "framework", "library"],
    "architecture": "Overall architecture and how the parts fit together"
  },
  "issues": [
    {
      "file": "path/of/the/file",
      "type": "bug|edge_case|vulnerability|performance|logic",
      "line": line_number,
      "description": "Brief description of the issue",
      "severity": "high|medium|low",
      "fix": "Complete line or block of code that fixes the issue"
    }
  ],
  "readme": {
    "title": "Project name",
    "description": "Short description for the README",
    "installation": "Installation steps",
    "usage": "How to run and use the project",
    "workflow": "How data and control flow through the project",
    "components": [
      {
        "name": "Component name",
        "description": "What the component is responsible for"
      }
    ]
  },
  "summary": "Brief summary of the project and its most important issues"
}

If no issues are found, return an empty issues array but still fill in every other field.

PROJECT FILES:
%s
JSON RESPONSE:
`, projectFiles)
}
