//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Merges the shapes listed in testbed/combine.toml into combined.glb.
func (Run) Combine() error {
	fmt.Println("Run combine...")
	_, err := executeCmd("go", withArgs("run", ".", "-config", "testbed/combine.toml"), withStream())
	return err
}

// Animates the skinned strip from testbed/skinned.toml.
func (Run) Skin() error {
	fmt.Println("Run skin...")
	_, err := executeCmd("go", withArgs("run", ".", "-config", "testbed/skinned.toml"), withStream())
	return err
}

// Runs the combine job and reruns it whenever the job file changes.
func (Run) Watch() error {
	mg.Deps(Build.CLI)
	_, err := executeCmd("bin/meshtools", withArgs("-config", "testbed/combine.toml", "-watch"), withStream())
	return err
}
