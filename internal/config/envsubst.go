package config

import (
	"os"
	"regexp"
	"strings"
)

// envRef matches ${VAR}, ${VAR:-default} and ${VAR:?message}.
var envRef = regexp.MustCompile(`\$\{([^}]+)\}`)

// substituteEnvVars expands environment references in content. Lines whose
// first non-blank character is '#' are copied verbatim so the template can
// document the syntax. Unresolved references stay in place and are reported
// in missing, in order of appearance.
func substituteEnvVars(content string) (string, []string) {
	var missing []string

	lines := strings.SplitAfter(content, "\n")
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		lines[i] = envRef.ReplaceAllStringFunc(line, func(ref string) string {
			value, problem, ok := resolveEnvRef(ref[2 : len(ref)-1])
			if !ok {
				missing = append(missing, problem)
				return ref
			}
			return value
		})
	}

	return strings.Join(lines, ""), missing
}

// resolveEnvRef evaluates the body of one ${...} reference. When it cannot be
// resolved, problem names the variable (and the message for the :? form).
func resolveEnvRef(expr string) (value, problem string, ok bool) {
	if name, def, found := strings.Cut(expr, ":-"); found {
		if v := os.Getenv(name); v != "" {
			return v, "", true
		}
		return def, "", true
	}
	if name, msg, found := strings.Cut(expr, ":?"); found {
		if v := os.Getenv(name); v != "" {
			return v, "", true
		}
		return "", name + ": " + msg, false
	}
	if v, found := os.LookupEnv(expr); found {
		return v, "", true
	}
	return "", expr, false
}
