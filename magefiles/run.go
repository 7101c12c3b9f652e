//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Builds and starts the testbed with anima.toml.
func (Run) Engine() error {
	mg.Deps(Build.Binary)
	fmt.Println("Run engine...")
	_, err := executeCmd("bin/idraw", withArgs("-config", "anima.toml"), withStream())
	return err
}
