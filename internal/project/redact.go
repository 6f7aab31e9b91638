package project

import (
	"path/filepath"
	"regexp"
	"strings"
)

const redacted = "[REDACTED]"

var (
	// secretName matches identifiers such as api_key, DB_PASSWORD, authToken.
	secretName = `[\w.-]*(?i:api[_-]?key|password|passwd|secret|token|private[_-]?key|access[_-]?key)[\w.-]*`

	// quotedSecret matches a quoted literal assigned to a secret-looking name.
	quotedSecret = regexp.MustCompile(`(` + secretName + `["']?\s*[:=]\s*)(["'])[^"'\n]*(["'])`)

	// bareSecret matches unquoted values in config-style files.
	bareSecret = regexp.MustCompile(`(?m)^(\s*(?:export\s+)?` + secretName + `\s*[:=][ \t]*)([^"'\s#][^\n#]*)`)

	configExtensions = map[string]bool{
		".env": true, ".yaml": true, ".yml": true, ".toml": true, ".ini": true, ".properties": true, ".cfg": true,
	}
)

// Redact blanks out secret-looking assignments in content. Only quoted literals
// are touched in source files; config files also lose unquoted values.
func Redact(name, content string) string {
	content = quotedSecret.ReplaceAllString(content, "${1}${2}"+redacted+"${3}")

	if configExtensions[strings.ToLower(filepath.Ext(name))] {
		content = bareSecret.ReplaceAllString(content, "${1}"+redacted)
	}
	return content
}
