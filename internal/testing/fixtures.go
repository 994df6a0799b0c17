package testing

import (
	"github.com/stretchr/testify/mock"

	"github.com/openstack-charmers/ldap-test-fixture-k8s/internal/config"
)

// PHPLDAPAdminConfig is a trimmed phpLDAPadmin config.php as shipped by the
// Debian package.
const PHPLDAPAdminConfig = `<?php
$servers = new Datastore();
$servers->newServer('ldap_pla');
$servers->setValue('server','name','My LDAP Server');
$servers->setValue('server','base',array('dc=example,dc=com'));
$servers->setValue('login','bind_id','cn=admin,dc=example,dc=com');
?>
`

// ContainerFixture provides a MockContainer pre-configured for common
// provisioning scenarios.
type ContainerFixture struct {
	cfg  *config.Config
	mock *MockContainer
}

// NewContainerFixture creates a fixture for a container named after
// cfg.Workload.
func NewContainerFixture(cfg *config.Config) *ContainerFixture {
	return &ContainerFixture{
		cfg:  cfg,
		mock: &MockContainer{ContainerName: cfg.Workload},
	}
}

// Mock returns the underlying MockContainer for custom configuration.
func (f *ContainerFixture) Mock() *MockContainer {
	return f.mock
}

// SuccessfulProvisioning configures every container call to succeed.
// Pull returns PHPLDAPAdminConfig.
func (f *ContainerFixture) SuccessfulProvisioning() *MockContainer {
	f.mock.On("AddLayer", mock.Anything, mock.Anything, true).Return(nil).Maybe()
	f.mock.On("Replan").Return(nil).Maybe()
	f.mock.On("Exec", mock.Anything, mock.Anything).Return("", nil).Maybe()
	f.mock.On("Pull", mock.Anything).Return(PHPLDAPAdminConfig, nil).Maybe()
	f.mock.On("Push", mock.Anything, mock.Anything).Return(nil).Maybe()
	f.mock.On("Restart", mock.Anything).Return(nil).Maybe()
	return f.mock
}

// FailingCommand configures the command whose first word is name to fail
// with err; everything else succeeds.
func (f *ContainerFixture) FailingCommand(name string, err error) *MockContainer {
	failing := mock.MatchedBy(func(argv []string) bool {
		return len(argv) > 0 && argv[0] == name
	})
	f.mock.On("Exec", failing, mock.Anything).Return("", err)
	return f.SuccessfulProvisioning()
}
