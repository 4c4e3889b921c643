// yuzu-updater - check GitHub for the latest yuzu mainline build and fetch it
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/yuzu-updater

package main

import (
	"os"

	"github.com/ariel-frischer/yuzu-updater/internal/cli"
)

func main() {
	os.Exit(cli.ExitCode(cli.Execute()))
}
