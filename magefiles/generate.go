//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/sh"
)

// Generate regenerates the gomock transport mock from pkg/search/transport.go.
// Requires mockgen on PATH (go install go.uber.org/mock/mockgen@v0.6.0).
func Generate() error {
	if err := sh.RunV("go", "generate", "./pkg/..."); err != nil {
		return fmt.Errorf("go generate: %w", err)
	}
	fmt.Println("Mocks regenerated.")
	return nil
}
