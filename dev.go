//go:build never

package rawpix

import (
	_ "github.com/bool64/dev" // Pins dev tooling for the Makefile includes.
)
