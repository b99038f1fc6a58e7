// Configurator checks product configurations against a feature model.
//
// A feature model describes a modular product (for example a wardrobe) as a
// tree of features with placement slots, dependencies and prices. The
// configurator lints models, lists what may be placed where, replays
// configuration sessions and validates them.
//
// Usage:
//
//	# Check a model for mistakes
//	configurator lint --model wardrobe.json
//
//	# What fits to the right of a small frame?
//	configurator candidates --model wardrobe.json --feature 10 --direction right
//
//	# Validate a recorded session
//	configurator validate --model wardrobe.json --session session.yaml
//
//	# Re-validate whenever the model changes
//	configurator watch --model wardrobe.json --session session.yaml
package main

import (
	"os"

	"mercator-hq/configurator/pkg/cli"
)

func main() {
	os.Exit(cli.ExitCode(Execute()))
}
