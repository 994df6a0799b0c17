package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/openstack-charmers/ldap-test-fixture-k8s/internal/directory"
)

// Config is the charm configuration.
type Config struct {
	// Domain is the dotted DNS domain the directory suffix is derived from.
	Domain string `koanf:"domain" validate:"required,hostname_rfc1123"`

	// Users is a comma-separated list of display names to seed.
	Users string `koanf:"users" validate:"displaynames"`

	// AdminPassword is the slapd admin password and the seeded users' password.
	AdminPassword string `koanf:"admin-password" validate:"required"`

	// Organization is the slapd organization name.
	Organization string `koanf:"organization" validate:"required"`

	// Workload is the name of the container running slapd and phpLDAPadmin.
	Workload string `koanf:"workload" validate:"required"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Domain:        "test.com",
		Users:         "",
		AdminPassword: "crapper",
		Organization:  "test",
		Workload:      "phpldapadmin",
	}
}

// UserList returns the configured display names.
func (c *Config) UserList() []string {
	return ParseUsers(c.Users)
}

// ParseUsers splits a comma-separated user list. Surrounding whitespace is
// trimmed and empty items are dropped; order is preserved.
func ParseUsers(users string) []string {
	var names []string
	for _, item := range strings.Split(users, ",") {
		name := strings.TrimSpace(item)
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	return names
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("displaynames", func(fl validator.FieldLevel) bool {
		return checkUsers(fl.Field().String()) == nil
	}); err != nil {
		panic(err)
	}
	return v
}

// checkUsers returns the first display name in users that cannot be seeded.
func checkUsers(users string) error {
	for _, name := range ParseUsers(users) {
		if err := directory.CheckDisplayName(name); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "displaynames":
		return fmt.Sprintf("%s: %v", fe.Field(), checkUsers(fe.Value().(string)))
	case "hostname_rfc1123":
		return fmt.Sprintf("%s %q is not a valid domain name", fe.Field(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}
