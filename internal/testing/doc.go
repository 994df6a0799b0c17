// Package testing provides test utilities, builders, and fixtures shared by
// package tests.
//
//   - ConfigBuilder: fluent builder for charm configurations
//   - ContainerFixture: a MockContainer primed for a full provisioning run
//   - MockContainer, MockActionEvent, MockStatusReporter, MockResolver:
//     testify mocks for the charm's collaborators
//
// Usage:
//
//	cfg := testing.NewConfigBuilder().
//	    WithDomain("example.org").
//	    WithUsers("Jane Doe").
//	    Build()
//
//	fixture := testing.NewContainerFixture(cfg)
//	container := fixture.SuccessfulProvisioning()
package testing
