package directory

import (
	"fmt"
	"strconv"
	"strings"
)

const headerTemplate = `dn: ou=People,{{ suffix }}
objectClass: organizationalUnit
ou: People

dn: ou=Groups,{{ suffix }}
objectClass: organizationalUnit
ou: Groups
`

const groupTemplate = `dn: cn={{ name }},ou=Groups,{{ suffix }}
objectClass: posixGroup
cn: {{ name }}
gidNumber: {{ gid }}
`

const userTemplate = `dn: uid={{ login }},ou=People,{{ suffix }}
objectClass: inetOrgPerson
objectClass: posixAccount
objectClass: shadowAccount
uid: {{ login }}
cn: {{ display-name }}
sn: {{ surname }}
givenName: {{ first-name }}
displayName: {{ display-name }}
uidNumber: {{ uid }}
gidNumber: {{ gid }}
userPassword: {{ password }}
loginShell: /bin/bash
homeDirectory: /home/{{ login }}
`

// RenderOptions controls LDIF rendering.
type RenderOptions struct {
	// Domain is the dotted domain the directory suffix is derived from.
	Domain string
	// Password is set as userPassword on every seeded account.
	Password string
}

// Render produces the LDIF loaded by slapadd: the organizational units,
// then groups, then users, each in dataset order.
func Render(ds *Dataset, opts RenderOptions) (string, error) {
	suffix := DomainComponents(opts.Domain)
	if suffix == "" {
		return "", fmt.Errorf("domain %q has no labels", opts.Domain)
	}

	blocks := make([]string, 0, 1+len(ds.Groups)+len(ds.Users))

	header, err := RenderTemplate(headerTemplate, map[string]string{"suffix": suffix})
	if err != nil {
		return "", err
	}
	blocks = append(blocks, header)

	for _, g := range ds.Groups {
		block, err := RenderTemplate(groupTemplate, map[string]string{
			"suffix": suffix,
			"name":   g.Name,
			"gid":    strconv.Itoa(g.GID),
		})
		if err != nil {
			return "", fmt.Errorf("group %s: %w", g.Name, err)
		}
		blocks = append(blocks, block)
	}

	for _, u := range ds.Users {
		if err := CheckDisplayName(u.DisplayName); err != nil {
			return "", fmt.Errorf("user %d: %w", u.UID, err)
		}
		block, err := RenderTemplate(userTemplate, map[string]string{
			"suffix":       suffix,
			"login":        u.Login,
			"display-name": u.DisplayName,
			"surname":      u.Surname,
			"first-name":   u.FirstName,
			"uid":          strconv.Itoa(u.UID),
			"gid":          strconv.Itoa(u.GID),
			"password":     opts.Password,
		})
		if err != nil {
			return "", fmt.Errorf("user %s: %w", u.Login, err)
		}
		blocks = append(blocks, block)
	}

	// Entries are separated by a single blank line.
	return strings.Join(blocks, "\n"), nil
}
