// SPDX-License-Identifier: MPL-2.0

// slipway builds a container image from a web-application source tree and a
// dependency manifest, and launches a single foreground server container from
// that image.
package main

import (
	cmd "slipway-cli/cmd/slipway"
)

func main() {
	cmd.Execute()
}
