//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Downloads the modules and builds the idraw binary into bin/.
func (Build) Binary() error {
	if err := goModDownload(); err != nil {
		return err
	}
	_, err := executeCmd("go", withArgs("build", "-o", "bin/idraw", "."), withStream())
	return err
}

type Test mg.Namespace

// Runs every package test. Uses the headless backend, no window is opened.
func (Test) All() error {
	_, err := executeCmd("go", withArgs("test", "./..."), withStream())
	return err
}

// Runs the tests with the race detector, covering the asset watcher.
func (Test) Race() error {
	_, err := executeCmd("go", withArgs("test", "-race", "./engine/..."), withStream())
	return err
}
