// Package kube runs workload commands inside a pod container through the
// Kubernetes pods/exec subresource.
//
// Juju deploys the charm and its workload as sibling containers of one pod,
// so the charm can reach the workload through the API server when the Pebble
// socket is not mounted (for example from an operator's workstation).
package kube

import (
	"context"
	"errors"
	"fmt"
	"io"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/kubernetes/scheme"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/tools/remotecommand"
	utilexec "k8s.io/client-go/util/exec"

	"github.com/openstack-charmers/ldap-test-fixture-k8s/internal/workload"
)

// Target identifies the container commands run in.
type Target struct {
	Namespace string
	Pod       string
	Container string
}

// Validate checks that every field of the target is set.
func (t Target) Validate() error {
	switch {
	case t.Namespace == "":
		return fmt.Errorf("namespace cannot be empty")
	case t.Pod == "":
		return fmt.Errorf("pod cannot be empty")
	case t.Container == "":
		return fmt.Errorf("container cannot be empty")
	}
	return nil
}

// StreamFunc opens the exec stream for a request URL. It exists so tests
// can run without an API server.
type StreamFunc func(ctx context.Context, req *rest.Request, opts remotecommand.StreamOptions) error

// Executor implements workload.Executor using pod exec.
type Executor struct {
	restConfig *rest.Config
	client     kubernetes.Interface
	target     Target
	stream     StreamFunc
}

var _ workload.Executor = (*Executor)(nil)

// LoadRESTConfig returns the in-cluster config, or the kubeconfig at path
// when path is set.
func LoadRESTConfig(path string) (*rest.Config, error) {
	if path == "" {
		cfg, err := rest.InClusterConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to load in-cluster config: %w", err)
		}
		return cfg, nil
	}
	cfg, err := clientcmd.BuildConfigFromFlags("", path)
	if err != nil {
		return nil, fmt.Errorf("failed to load kubeconfig %s: %w", path, err)
	}
	return cfg, nil
}

// NewExecutor creates an Executor for target.
func NewExecutor(restConfig *rest.Config, target Target) (*Executor, error) {
	if restConfig == nil {
		return nil, fmt.Errorf("rest config cannot be nil")
	}
	if err := target.Validate(); err != nil {
		return nil, err
	}

	client, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}

	e := &Executor{
		restConfig: restConfig,
		client:     client,
		target:     target,
	}
	e.stream = e.spdyStream
	return e, nil
}

// Run implements workload.Executor.
func (e *Executor) Run(ctx context.Context, argv []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if len(argv) == 0 {
		return fmt.Errorf("empty command")
	}

	req := e.client.CoreV1().RESTClient().Post().
		Resource("pods").
		Namespace(e.target.Namespace).
		Name(e.target.Pod).
		SubResource("exec").
		VersionedParams(&corev1.PodExecOptions{
			Container: e.target.Container,
			Command:   argv,
			Stdin:     stdin != nil,
			Stdout:    stdout != nil,
			Stderr:    stderr != nil,
		}, scheme.ParameterCodec)

	err := e.stream(ctx, req, remotecommand.StreamOptions{
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	})
	return mapError(argv, e.target, err)
}

func (e *Executor) spdyStream(ctx context.Context, req *rest.Request, opts remotecommand.StreamOptions) error {
	exec, err := remotecommand.NewSPDYExecutor(e.restConfig, "POST", req.URL())
	if err != nil {
		return fmt.Errorf("failed to create exec stream: %w", err)
	}
	return exec.StreamWithContext(ctx, opts)
}

func mapError(argv []string, target Target, err error) error {
	if err == nil {
		return nil
	}
	var exitErr utilexec.ExitError
	if errors.As(err, &exitErr) && exitErr.Exited() {
		return &workload.ExitError{Command: argv, ExitCode: exitErr.ExitStatus()}
	}
	return fmt.Errorf("exec in %s/%s[%s] failed: %w", target.Namespace, target.Pod, target.Container, err)
}
