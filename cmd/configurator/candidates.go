package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mercator-hq/configurator/pkg/cli"
	"mercator-hq/configurator/pkg/config"
	"mercator-hq/configurator/pkg/featuremodel"
	"mercator-hq/configurator/pkg/interpreter"
)

var candidatesFlags struct {
	model     string
	feature   int64
	direction string
	format    string
}

var candidatesCmd = &cobra.Command{
	Use:   "candidates",
	Short: "List what may be placed in a slot",
	Long: `List the features that may be placed in a slot of a feature.

Without --feature the features that may start an empty configuration are
listed.

Examples:
  # Features that can start a configuration
  configurator candidates --model wardrobe.json

  # Features that fit on top of feature 10
  configurator candidates --model wardrobe.json --feature 10 --direction above`,
	RunE: runCandidates,
}

func init() {
	rootCmd.AddCommand(candidatesCmd)

	candidatesCmd.Flags().StringVarP(&candidatesFlags.model, "model", "m", "", "feature model file (default: model.path)")
	candidatesCmd.Flags().Int64VarP(&candidatesFlags.feature, "feature", "f", 0, "feature whose slot is queried")
	candidatesCmd.Flags().StringVarP(&candidatesFlags.direction, "direction", "d", "right", "slot: left, right, above")
	candidatesCmd.Flags().StringVar(&candidatesFlags.format, "format", "text", "output format: text, json, csv")
}

func runCandidates(cmd *cobra.Command, args []string) error {
	cfg := config.MustGetConfig()

	out, err := formatter(candidatesFlags.format)
	if err != nil {
		return err
	}
	model, err := loadModel(candidatesFlags.model, cfg)
	if err != nil {
		return cli.NewCommandError("candidates", err)
	}
	interp := interpreter.New(model)

	var (
		title    string
		features []*featuremodel.Feature
	)
	if candidatesFlags.feature == 0 {
		title = "Free placement"
		features, err = interp.GetAllPlaceable()
	} else {
		dir, perr := interpreter.ParseDirection(candidatesFlags.direction)
		if perr != nil {
			return cli.NewConfigError("direction", perr.Error())
		}
		f, lerr := interp.GetFeature(candidatesFlags.feature)
		if lerr != nil {
			return cli.NewCommandError("candidates", lerr)
		}
		title = fmt.Sprintf("%s of %s", dir, f.Name)
		features, err = interp.GetAllowed(f.ID, dir)
	}
	if err != nil {
		return cli.NewCommandError("candidates", err)
	}

	return out.FormatTo(cmd.OutOrStdout(), newFeatureList(title, features))
}
