package normalization

import (
  "strings"
)

// ParseInputString lowercases and trims user-provided natural keys (emails).
func ParseInputString(input string) string {
  normalized := strings.ToLower(strings.TrimSpace(input))
  return normalized
}

// ParseName trims whitespace but keeps the caller's casing. Tag and
// ingredient names are deduplicated on the exact trimmed value.
func ParseName(input string) string {
  return strings.TrimSpace(input)
}
