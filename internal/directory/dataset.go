package directory

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

const (
	// BaseGID is the gidNumber of the first seeded group.
	BaseGID = 500
	// BaseUID is the uidNumber of the first seeded user.
	BaseUID = 1000
)

// GroupNames are the groups created on every run, in order.
// Users are made members of the first one.
var GroupNames = []string{"admin", "openstack"}

// Group is a posixGroup entry.
type Group struct {
	GID  int
	Name string
}

// User is an inetOrgPerson/posixAccount entry.
type User struct {
	UID         int
	GID         int
	Login       string
	DisplayName string
	Surname     string
	FirstName   string
}

// Dataset holds the groups and users of one seeding run.
type Dataset struct {
	Groups []Group
	Users  []User
}

// NewDataset assigns identifiers to the fixed groups and to one user per
// display name, keeping input order.
func NewDataset(displayNames []string) *Dataset {
	ds := &Dataset{
		Groups: make([]Group, 0, len(GroupNames)),
		Users:  make([]User, 0, len(displayNames)),
	}

	for i, name := range GroupNames {
		ds.Groups = append(ds.Groups, Group{GID: BaseGID + i, Name: name})
	}

	primary := ds.Groups[0].GID
	for i, name := range displayNames {
		ds.Users = append(ds.Users, User{
			UID:         BaseUID + i,
			GID:         primary,
			Login:       Login(name),
			DisplayName: name,
			Surname:     name,
			FirstName:   firstName(name),
		})
	}

	return ds
}

// Login derives a login name from a display name: spaces removed, lowercased.
func Login(displayName string) string {
	return strings.ToLower(strings.ReplaceAll(displayName, " ", ""))
}

func firstName(displayName string) string {
	fields := strings.Fields(displayName)
	if len(fields) == 0 {
		return displayName
	}
	return fields[0]
}

// CheckDisplayName reports whether name can be written verbatim into an LDIF
// entry and used to derive a DN.
func CheckDisplayName(name string) error {
	if name == "" {
		return errors.New("display name is empty")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return fmt.Errorf("display name %q contains control characters", name)
		}
	}
	if strings.Contains(name, "{{") || strings.Contains(name, "}}") {
		return fmt.Errorf("display name %q contains template markers", name)
	}
	if strings.ContainsAny(name[:1], " :<") {
		return fmt.Errorf("display name %q starts with %q", name, name[:1])
	}
	if strings.ContainsAny(name, dnSpecial) {
		return fmt.Errorf("display name %q contains one of %s", name, dnSpecial)
	}
	return nil
}

const dnSpecial = `,=+"\<>;`
