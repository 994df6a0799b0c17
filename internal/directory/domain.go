package directory

import (
	"strings"
)

// DefaultDomainComponents is the suffix phpLDAPadmin ships with in config.php.
const DefaultDomainComponents = "dc=example,dc=com"

// DomainComponents converts a dotted domain into an LDAP suffix.
//
//	test.com → dc=test,dc=com
func DomainComponents(domain string) string {
	labels := strings.Split(domain, ".")
	parts := make([]string, 0, len(labels))
	for _, label := range labels {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		parts = append(parts, "dc="+label)
	}
	return strings.Join(parts, ",")
}

// ReplaceDomainComponents swaps every literal occurrence of from with to.
// The input is treated as opaque text; nothing around the match is touched.
func ReplaceDomainComponents(contents, from, to string) string {
	if from == "" {
		return contents
	}
	return strings.ReplaceAll(contents, from, to)
}
