package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"mercator-hq/configurator/pkg/cli"
	"mercator-hq/configurator/pkg/config"
	"mercator-hq/configurator/pkg/featuremodel"
	"mercator-hq/configurator/pkg/interpreter"
)

var featuresFlags struct {
	model     string
	physical  bool
	materials bool
	mandatory bool
	xor       bool
	format    string
}

var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "List the features of a model",
	Long: `List the features of a feature model, optionally filtered.

Examples:
  # Every feature, in id order
  configurator features --model wardrobe.json

  # Placeable parts in breadth-first order
  configurator features --model wardrobe.json --physical

  # Alternative groups as CSV
  configurator features --model wardrobe.json --xor --format csv`,
	RunE: runFeatures,
}

func init() {
	rootCmd.AddCommand(featuresCmd)

	featuresCmd.Flags().StringVarP(&featuresFlags.model, "model", "m", "", "feature model file (default: model.path)")
	featuresCmd.Flags().BoolVar(&featuresFlags.physical, "physical", false, "only placeable features")
	featuresCmd.Flags().BoolVar(&featuresFlags.materials, "materials", false, "only materials")
	featuresCmd.Flags().BoolVar(&featuresFlags.mandatory, "mandatory", false, "only mandatory features")
	featuresCmd.Flags().BoolVar(&featuresFlags.xor, "xor", false, "only alternative groups")
	featuresCmd.Flags().StringVar(&featuresFlags.format, "format", "text", "output format: text, json, csv")
	featuresCmd.MarkFlagsMutuallyExclusive("physical", "materials", "mandatory", "xor")
}

// FeatureRow describes one feature in listings.
type FeatureRow struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	ParentID int64   `json:"parent_id"`
	Physical bool    `json:"physical"`
	Material bool    `json:"material"`
	Price    float64 `json:"price"`
}

// FeatureList is a listing of features.
type FeatureList struct {
	Title    string       `json:"title"`
	Features []FeatureRow `json:"features"`
}

func newFeatureList(title string, features []*featuremodel.Feature) *FeatureList {
	list := &FeatureList{Title: title, Features: make([]FeatureRow, 0, len(features))}
	for _, f := range features {
		list.Features = append(list.Features, FeatureRow{
			ID:       f.ID,
			Name:     f.Name,
			ParentID: f.ParentID,
			Physical: f.Placeable(),
			Material: f.HasMaterial(),
			Price:    f.Price(),
		})
	}
	return list
}

// Header implements cli.Tabular.
func (l *FeatureList) Header() []string {
	return []string{"id", "name", "parent_id", "physical", "material", "price"}
}

// Rows implements cli.Tabular.
func (l *FeatureList) Rows() [][]string {
	rows := make([][]string, 0, len(l.Features))
	for _, f := range l.Features {
		rows = append(rows, []string{
			strconv.FormatInt(f.ID, 10),
			f.Name,
			strconv.FormatInt(f.ParentID, 10),
			strconv.FormatBool(f.Physical),
			strconv.FormatBool(f.Material),
			strconv.FormatFloat(f.Price, 'f', -1, 64),
		})
	}
	return rows
}

// WriteText prints the listing in human-readable form.
func (l *FeatureList) WriteText(w io.Writer) error {
	fmt.Fprintf(w, "%s (%d)\n", l.Title, len(l.Features))
	for _, f := range l.Features {
		kind := ""
		switch {
		case f.Physical:
			kind = " [physical]"
		case f.Material:
			kind = " [material]"
		}
		price := ""
		if f.Price != 0 {
			price = " " + strconv.FormatFloat(f.Price, 'f', -1, 64)
		}
		if _, err := fmt.Fprintf(w, "  %4d  %s%s%s\n", f.ID, f.Name, kind, price); err != nil {
			return err
		}
	}
	return nil
}

func runFeatures(cmd *cobra.Command, args []string) error {
	cfg := config.MustGetConfig()

	out, err := formatter(featuresFlags.format)
	if err != nil {
		return err
	}
	model, err := loadModel(featuresFlags.model, cfg)
	if err != nil {
		return cli.NewCommandError("features", err)
	}
	interp := interpreter.New(model)

	var (
		title    string
		features []*featuremodel.Feature
	)
	switch {
	case featuresFlags.physical:
		title = "Placeable features"
		features, err = interp.GetAllPlaceable()
	case featuresFlags.materials:
		title = "Materials"
		features = interp.GetAllMaterials()
	case featuresFlags.mandatory:
		title = "Mandatory features"
		features = interp.GetMandatoryFeatures()
	case featuresFlags.xor:
		title = "Alternative groups"
		features = interp.GetXorFeatures()
	default:
		title = "Features of " + model.Name
		features = model.All()
	}
	if err != nil {
		return cli.NewCommandError("features", err)
	}

	return out.FormatTo(cmd.OutOrStdout(), newFeatureList(title, features))
}
