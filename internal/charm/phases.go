package charm

import (
	"fmt"
	"io"
	"strings"

	"github.com/openstack-charmers/ldap-test-fixture-k8s/internal/directory"
	"github.com/openstack-charmers/ldap-test-fixture-k8s/internal/provisioning"
	"github.com/openstack-charmers/ldap-test-fixture-k8s/internal/workload"
)

// Paths inside the workload container.
const (
	WebConfigPath = "/etc/phpldapadmin/config.php"
	LDIFPath      = "/tmp/setup.ldif"
)

// Phases returns the provisioning sequence in execution order.
func Phases() []provisioning.Phase {
	return []provisioning.Phase{
		&PreseedPhase{},
		&WebConfigPhase{},
		&SeedDirectoryPhase{},
		&RestartPhase{},
	}
}

// PreseedPhase answers the slapd package prompts and reconfigures it.
type PreseedPhase struct{}

// Name implements provisioning.Phase.
func (*PreseedPhase) Name() string { return "preseed" }

// Provision implements provisioning.Phase.
func (p *PreseedPhase) Provision(ctx *provisioning.Context) error {
	selections := DebconfSelections(ctx.Config.Domain, ctx.Config.Organization, ctx.Config.AdminPassword)
	if err := run(ctx, p.Name(), strings.NewReader(strings.Join(selections, "\n")+"\n"), "debconf-set-selections"); err != nil {
		return fmt.Errorf("failed to set debconf selections: %w", err)
	}
	if err := run(ctx, p.Name(), nil, "dpkg-reconfigure", "-f", "noninteractive", "slapd"); err != nil {
		return fmt.Errorf("failed to reconfigure slapd: %w", err)
	}
	return nil
}

// DebconfSelections returns the debconf lines pre-seeding slapd.
func DebconfSelections(domain, organization, password string) []string {
	return []string{
		"slapd slapd/internal/adminpw password " + password,
		"slapd slapd/password1 password " + password,
		"slapd slapd/password2 password " + password,
		"slapd slapd/domain string " + domain,
		"slapd shared/organization string " + organization,
	}
}

// WebConfigPhase points phpLDAPadmin at the configured suffix.
type WebConfigPhase struct{}

// Name implements provisioning.Phase.
func (*WebConfigPhase) Name() string { return "web-config" }

// Provision implements provisioning.Phase.
func (p *WebConfigPhase) Provision(ctx *provisioning.Context) error {
	current, err := ctx.Container.Pull(ctx, WebConfigPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", WebConfigPath, err)
	}
	provisioning.LogFilePulled(ctx.Observer, p.Name(), WebConfigPath, len(current))

	suffix := directory.DomainComponents(ctx.Config.Domain)
	updated := directory.ReplaceDomainComponents(current, directory.DefaultDomainComponents, suffix)

	if err := ctx.Container.Push(ctx, WebConfigPath, updated); err != nil {
		return fmt.Errorf("failed to write %s: %w", WebConfigPath, err)
	}
	provisioning.LogFilePushed(ctx.Observer, p.Name(), WebConfigPath, len(updated))
	return nil
}

// SeedDirectoryPhase loads the test groups and users into slapd.
type SeedDirectoryPhase struct{}

// Name implements provisioning.Phase.
func (*SeedDirectoryPhase) Name() string { return "seed-directory" }

// Provision implements provisioning.Phase.
func (p *SeedDirectoryPhase) Provision(ctx *provisioning.Context) error {
	dataset := directory.NewDataset(ctx.Config.UserList())
	ldif, err := directory.Render(dataset, directory.RenderOptions{
		Domain:   ctx.Config.Domain,
		Password: ctx.Config.AdminPassword,
	})
	if err != nil {
		return fmt.Errorf("failed to render directory entries: %w", err)
	}

	if err := ctx.Container.Push(ctx, LDIFPath, ldif); err != nil {
		return fmt.Errorf("failed to push %s: %w", LDIFPath, err)
	}
	provisioning.LogFilePushed(ctx.Observer, p.Name(), LDIFPath, len(ldif))

	if err := run(ctx, p.Name(), nil, "slapadd", "-v", "-c", "-l", LDIFPath); err != nil {
		return fmt.Errorf("failed to load directory entries: %w", err)
	}
	return nil
}

// RestartPhase restarts phpLDAPadmin and slapd.
type RestartPhase struct{}

// Name implements provisioning.Phase.
func (*RestartPhase) Name() string { return "restart" }

// Provision implements provisioning.Phase.
func (p *RestartPhase) Provision(ctx *provisioning.Context) error {
	services := Services()
	if err := ctx.Container.Restart(ctx, services...); err != nil {
		return fmt.Errorf("failed to restart services: %w", err)
	}
	provisioning.LogServicesRestarted(ctx.Observer, p.Name(), services)
	return nil
}

func run(ctx *provisioning.Context, phase string, stdin io.Reader, argv ...string) error {
	provisioning.LogCommand(ctx.Observer, phase, argv)
	_, err := workload.Run(ctx, ctx.Container, stdin, argv...)
	return err
}
