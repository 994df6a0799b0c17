package directory

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var unresolvedPattern = regexp.MustCompile(`\{\{\s*[a-z][a-z0-9-]*\s*\}\}`)

// RenderTemplate replaces every {{ key }} placeholder in tmpl with vars[key].
// Placeholders left over after substitution are reported as an error.
func RenderTemplate(tmpl string, vars map[string]string) (string, error) {
	if tmpl == "" {
		return "", nil
	}

	// Sorted keys keep substitution order stable across runs.
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := tmpl
	for _, k := range keys {
		result = strings.ReplaceAll(result, "{{ "+k+" }}", vars[k])
	}

	if missing := unresolvedPattern.FindAllString(result, -1); len(missing) > 0 {
		return "", fmt.Errorf("unresolved template variables: %s", strings.Join(missing, ", "))
	}

	return result, nil
}
