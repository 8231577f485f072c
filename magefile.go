//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/sh"
)

// Default target to run when none is specified
// Usage: mage
var Default = Test

// Build compiles every package.
func Build() error {
	fmt.Println("Building...")
	return sh.RunV("go", "build", "./...")
}

// Test runs the full test suite.
func Test() error {
	fmt.Println("Testing...")
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet over the module.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}
