package utils

import (
	"errors"
	"strings"
)

// ErrNoJSONObject is returned when no brace-delimited object can be located
// in the model output.
var ErrNoJSONObject = errors.New("no JSON object found in model output")

// ExtractJSONObject returns the first top-level {...} block found anywhere in
// raw. Vision and chat models often wrap their JSON in prose or markdown
// fences, so everything outside the outermost braces is ignored. Brace
// tracking skips braces inside string literals.
func ExtractJSONObject(raw string) (string, error) {
	start := strings.IndexByte(raw, '{')
	if start < 0 {
		return "", ErrNoJSONObject
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(raw); i++ {
		c := raw[i]
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
				return raw[start : i+1], nil
			}
		}
	}
	return "", ErrNoJSONObject
}

// ExtractJSONList returns the first top-level [...] block in raw, falling
// back to wrapping a bare object in a single-element list. Routing models are
// instructed to emit a JSON list but frequently emit the object alone.
func ExtractJSONList(raw string) (string, error) {
	raw = stripCodeFences(raw)

	start := strings.IndexByte(raw, '[')
	objStart := strings.IndexByte(raw, '{')
	if start < 0 || (objStart >= 0 && objStart < start) {
		obj, err := ExtractJSONObject(raw)
		if err != nil {
			return "", err
		}
		return "[" + obj + "]", nil
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(raw); i++ {
		c := raw[i]
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
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return raw[start : i+1], nil
			}
		}
	}
	return "", ErrNoJSONObject
}

func stripCodeFences(raw string) string {
	raw = strings.ReplaceAll(raw, "```json", "")
	return strings.ReplaceAll(raw, "```", "")
}
