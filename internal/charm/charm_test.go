package charm_test

import (
	"context"
	"errors"
	"strings"

	"github.com/go-logr/logr"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/mock"

	"github.com/openstack-charmers/ldap-test-fixture-k8s/internal/charm"
	"github.com/openstack-charmers/ldap-test-fixture-k8s/internal/config"
	"github.com/openstack-charmers/ldap-test-fixture-k8s/internal/juju"
	"github.com/openstack-charmers/ldap-test-fixture-k8s/internal/provisioning"
	fixtures "github.com/openstack-charmers/ldap-test-fixture-k8s/internal/testing"
	"github.com/openstack-charmers/ldap-test-fixture-k8s/internal/workload"
)

var _ = Describe("Charm", func() {
	var (
		ctx       context.Context
		cfg       *config.Config
		source    *fixtures.StaticSource
		container *fixtures.MockContainer
		status    *fixtures.MockStatusReporter
		resolver  *fixtures.MockResolver
		metrics   *provisioning.Metrics
		opened    []string
		openErr   error
		router    *charm.Router
	)

	BeforeEach(func() {
		ctx = context.Background()
		cfg = fixtures.NewConfigBuilder().WithUsers("Jane Doe").Build()
		source = fixtures.NewStaticSource(cfg)
		status = &fixtures.MockStatusReporter{}
		resolver = &fixtures.MockResolver{}
		metrics = provisioning.NewMetrics()
		opened = nil
		openErr = nil

		status.On("StatusSet", juju.StatusMaintenance, mock.Anything).Return(nil)
		status.On("StatusSet", juju.StatusActive, "").Return(nil)
	})

	JustBeforeEach(func() {
		c, err := charm.New(charm.Options{
			Config: source,
			Open: func(_ context.Context, name string) (workload.Container, error) {
				opened = append(opened, name)
				if openErr != nil {
					return nil, openErr
				}
				return container, nil
			},
			Resolver: resolver,
			Status:   status,
			Metrics:  metrics,
			Log:      logr.Discard(),
		})
		Expect(err).NotTo(HaveOccurred())

		router = charm.NewRouter(logr.Discard())
		Expect(c.Register(router)).To(Succeed())
	})

	Describe("workload ready", func() {
		var ev *charm.Event

		BeforeEach(func() {
			ev = charm.ParseDispatchPath("hooks/phpldapadmin-pebble-ready", cfg.Workload)
		})

		Context("when every step succeeds", func() {
			BeforeEach(func() {
				container = fixtures.NewContainerFixture(cfg).SuccessfulProvisioning()
			})

			It("adds the layer, runs all four phases and goes active", func() {
				Expect(router.Dispatch(ctx, ev)).To(Succeed())

				Expect(opened).To(Equal([]string{"phpldapadmin"}))
				container.AssertCalled(GinkgoT(), "AddLayer", charm.LayerLabel, charm.PebbleLayer(), true)
				container.AssertCalled(GinkgoT(), "Replan")
				container.AssertCalled(GinkgoT(), "Exec", []string{"dpkg-reconfigure", "-f", "noninteractive", "slapd"}, "")
				container.AssertCalled(GinkgoT(), "Push", charm.WebConfigPath, mock.Anything)
				container.AssertCalled(GinkgoT(), "Push", charm.LDIFPath, mock.Anything)
				container.AssertCalled(GinkgoT(), "Restart", []string{"phpldapadmin", "slapd"})

				status.AssertCalled(GinkgoT(), "StatusSet", juju.StatusMaintenance, mock.Anything)
				status.AssertCalled(GinkgoT(), "StatusSet", juju.StatusActive, "")
			})

			It("records a success for every phase", func() {
				Expect(router.Dispatch(ctx, ev)).To(Succeed())

				count, err := testutil.GatherAndCount(metrics.Registry(), "ldap_fixture_provisioning_phase_total")
				Expect(err).NotTo(HaveOccurred())
				Expect(count).To(Equal(4))
			})

			It("runs the phases in order", func() {
				Expect(router.Dispatch(ctx, ev)).To(Succeed())

				var sequence []string
				for _, call := range container.Calls {
					switch call.Method {
					case "Exec":
						sequence = append(sequence, call.Arguments.Get(0).([]string)[0])
					case "Push", "Restart":
						sequence = append(sequence, call.Method)
					}
				}
				Expect(sequence).To(Equal([]string{
					"debconf-set-selections",
					"dpkg-reconfigure",
					"Push", // config.php
					"Push", // setup.ldif
					"slapadd",
					"Restart",
				}))
			})
		})

		Context("when slapadd fails", func() {
			BeforeEach(func() {
				container = fixtures.NewContainerFixture(cfg).
					FailingCommand("slapadd", &workload.ExitError{Command: []string{"slapadd"}, ExitCode: 1})
			})

			It("stops before restarting services and stays in maintenance", func() {
				err := router.Dispatch(ctx, ev)
				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("seed-directory phase failed"))

				var exitErr *workload.ExitError
				Expect(errors.As(err, &exitErr)).To(BeTrue())
				Expect(exitErr.ExitCode).To(Equal(1))

				container.AssertNotCalled(GinkgoT(), "Restart", mock.Anything)
				status.AssertNotCalled(GinkgoT(), "StatusSet", juju.StatusActive, "")
			})
		})

		Context("when the configuration cannot be loaded", func() {
			BeforeEach(func() {
				container = fixtures.NewContainerFixture(cfg).SuccessfulProvisioning()
				source.Err = errors.New("config-get failed")
			})

			It("does not touch the container", func() {
				Expect(router.Dispatch(ctx, ev)).To(MatchError(ContainSubstring("failed to load configuration")))
				Expect(opened).To(BeEmpty())
				status.AssertNotCalled(GinkgoT(), "StatusSet", juju.StatusBlocked, mock.Anything)
			})
		})

		Context("when the configuration is invalid", func() {
			BeforeEach(func() {
				container = fixtures.NewContainerFixture(cfg).Mock()
				bad := *cfg
				bad.Users = "Mallory\nuidNumber: 0"
				source.Err = bad.Validate()
				status.On("StatusSet", juju.StatusBlocked, mock.Anything).Return(nil)
			})

			It("blocks the unit without provisioning", func() {
				err := router.Dispatch(ctx, ev)
				Expect(err).To(MatchError(config.ErrInvalid))

				status.AssertCalled(GinkgoT(), "StatusSet", juju.StatusBlocked, mock.MatchedBy(func(msg string) bool {
					return strings.Contains(msg, "control characters")
				}))
				Expect(opened).To(BeEmpty())
				container.AssertNotCalled(GinkgoT(), "AddLayer", mock.Anything, mock.Anything, mock.Anything)
			})
		})

		Context("when the container cannot be reached", func() {
			BeforeEach(func() {
				container = fixtures.NewContainerFixture(cfg).Mock()
				openErr = errors.New("socket not found")
				status.On("StatusSet", juju.StatusWaiting, mock.Anything).Return(nil)
			})

			It("waits for the container", func() {
				Expect(router.Dispatch(ctx, ev)).To(MatchError(ContainSubstring("socket not found")))
				status.AssertCalled(GinkgoT(), "StatusSet", juju.StatusWaiting, "waiting for phpldapadmin container")
				status.AssertNotCalled(GinkgoT(), "StatusSet", juju.StatusMaintenance, mock.Anything)
			})
		})
	})

	Describe("get-ldap-url action", func() {
		var (
			ev     *charm.Event
			action *fixtures.MockActionEvent
		)

		BeforeEach(func() {
			container = fixtures.NewContainerFixture(cfg).Mock()
			action = &fixtures.MockActionEvent{}
			ev = charm.ParseDispatchPath("actions/get-ldap-url", cfg.Workload)
			ev.Action = action
		})

		It("returns ldap://<ip>", func() {
			resolver.On("ResolveHostIP").Return("10.1.2.3", nil)
			action.On("SetResults", map[string]string{"url": "ldap://10.1.2.3"}).Return(nil)

			Expect(router.Dispatch(ctx, ev)).To(Succeed())
			action.AssertExpectations(GinkgoT())
			Expect(opened).To(BeEmpty())
		})

		It("fails without results when resolution fails", func() {
			resolver.On("ResolveHostIP").Return("", errors.New("no such host"))

			err := router.Dispatch(ctx, ev)
			Expect(err).To(MatchError(ContainSubstring("no such host")))
			action.AssertNotCalled(GinkgoT(), "SetResults", mock.Anything)
		})
	})

	Describe("other hooks", func() {
		BeforeEach(func() {
			container = fixtures.NewContainerFixture(cfg).Mock()
		})

		It("acknowledges config-changed without provisioning", func() {
			ev := charm.ParseDispatchPath("hooks/config-changed", cfg.Workload)
			Expect(router.Dispatch(ctx, ev)).To(Succeed())
			Expect(opened).To(BeEmpty())
			Expect(source.Loads).To(BeZero())
		})
	})
})
