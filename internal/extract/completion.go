// Package extract recovers the useful payload from raw model output: the
// completion that follows the echoed prompt, and JSON objects embedded in
// free text.
package extract

import (
	"errors"
	"fmt"
	"strings"
)

// ErrContractViolation is returned when the generator did not echo the prompt.
// The slicing offset is meaningless in that case, so callers must fail the
// request instead of guessing.
var ErrContractViolation = errors.New("model output does not start with the prompt")

// Completion returns the text generated after prompt, trimmed.
func Completion(full, prompt string) (string, error) {
	if !strings.HasPrefix(full, prompt) {
		return "", fmt.Errorf("%w (prompt %d bytes, output %d bytes)", ErrContractViolation, len(prompt), len(full))
	}
	return strings.TrimSpace(full[len(prompt):]), nil
}
