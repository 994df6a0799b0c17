package juju

import (
	"fmt"
	"os"
)

// Env is the hook context passed by the unit agent.
type Env struct {
	DispatchPath string
	UnitName     string
	ModelName    string
	CharmDir     string
	ActionName   string
	ActionUUID   string
}

// LoadEnv reads the hook context through getenv. A nil getenv uses os.Getenv.
func LoadEnv(getenv func(string) string) Env {
	if getenv == nil {
		getenv = os.Getenv
	}
	return Env{
		DispatchPath: getenv("JUJU_DISPATCH_PATH"),
		UnitName:     getenv("JUJU_UNIT_NAME"),
		ModelName:    getenv("JUJU_MODEL_NAME"),
		CharmDir:     getenv("JUJU_CHARM_DIR"),
		ActionName:   getenv("JUJU_ACTION_NAME"),
		ActionUUID:   getenv("JUJU_ACTION_UUID"),
	}
}

// InHook reports whether the process was started by the unit agent.
func (e Env) InHook() bool {
	return e.DispatchPath != ""
}

// Validate checks the fields every dispatch needs.
func (e Env) Validate() error {
	if e.DispatchPath == "" {
		return fmt.Errorf("JUJU_DISPATCH_PATH is not set")
	}
	if e.UnitName == "" {
		return fmt.Errorf("JUJU_UNIT_NAME is not set")
	}
	return nil
}
