package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"mercator-hq/configurator/pkg/cli"
	"mercator-hq/configurator/pkg/config"
	"mercator-hq/configurator/pkg/configuration"
	"mercator-hq/configurator/pkg/featuremodel"
	"mercator-hq/configurator/pkg/history"
	"mercator-hq/configurator/pkg/interpreter"
	"mercator-hq/configurator/pkg/session"
	"mercator-hq/configurator/pkg/telemetry/logging"
	"mercator-hq/configurator/pkg/validation"
)

var validateFlags struct {
	model      string
	session    string
	priceLimit float64
	format     string
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Replay a session script and validate the configuration",
	Long: `Replay a session script against a feature model and validate the result.

Every placement is checked against the slot rules while the script is
replayed; the finished configuration is then checked for mandatory features,
alternative groups, dependencies, exclusions and the price ceiling. The run is
recorded in the validation history when history is enabled.

Session script:
  price_limit: 500
  material: 20
  steps:
    - place: 10
    - place: 11
      right_of: 0
    - place: 16
      above: 0

Examples:
  configurator validate --model wardrobe.json --session session.yaml
  configurator validate --model wardrobe.json --session session.yaml --price-limit 300 --format json`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateFlags.model, "model", "m", "", "feature model file (default: model.path)")
	validateCmd.Flags().StringVarP(&validateFlags.session, "session", "s", "", "session script (YAML)")
	validateCmd.Flags().Float64Var(&validateFlags.priceLimit, "price-limit", configuration.Unlimited, "price ceiling, -1 for unlimited (overrides the script)")
	validateCmd.Flags().StringVar(&validateFlags.format, "format", "text", "output format: text, json")
	_ = validateCmd.MarkFlagRequired("session")
}

// ValidateResult is the outcome of one validated session.
type ValidateResult struct {
	Session string                     `json:"session"`
	Model   string                     `json:"model"`
	Report  *validation.Report         `json:"report"`
	Price   *configuration.PriceStatus `json:"price"`
}

// WriteText prints the report followed by the price summary.
func (r *ValidateResult) WriteText(w io.Writer) error {
	if _, err := io.WriteString(w, r.Report.String()); err != nil {
		return err
	}
	total := strconv.FormatFloat(r.Price.Used, 'f', -1, 64)
	if r.Price.Limit == configuration.Unlimited {
		_, err := fmt.Fprintf(w, "\nTotal: %s (no limit)\n", total)
		return err
	}
	_, err := fmt.Fprintf(w, "\nTotal: %s of %s (%.0f%%)\n",
		total, strconv.FormatFloat(r.Price.Limit, 'f', -1, 64), r.Price.Percentage*100)
	return err
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg := config.MustGetConfig()
	ctx := cmd.Context()

	out, err := formatter(validateFlags.format)
	if err != nil {
		return err
	}
	model, err := loadModel(validateFlags.model, cfg)
	if err != nil {
		return cli.NewCommandError("validate", err)
	}
	script, err := session.LoadScript(validateFlags.session)
	if err != nil {
		return cli.NewCommandError("validate", err)
	}

	store, err := openHistory(&cfg.History)
	if err != nil {
		return cli.NewCommandError("validate", err)
	}
	if store != nil {
		defer store.Close()
	}

	s, err := newSession(model, cfg, store, nil)
	if err != nil {
		return cli.NewCommandError("validate", err)
	}
	if _, err := s.Run(script); err != nil {
		return cli.NewCommandError("validate", err)
	}
	if cmd.Flags().Changed("price-limit") {
		if err := s.SetPriceLimit(validateFlags.priceLimit); err != nil {
			return cli.NewConfigError("price-limit", err.Error())
		}
	}

	ctx = logging.WithModel(logging.WithSession(ctx, s.ID()), model.Name)
	report, err := s.Validate(ctx)
	if err != nil {
		if report == nil {
			return cli.NewCommandError("validate", err)
		}
		appLogger.WarnContext(ctx, "validation not recorded", "error", err)
	}

	result := &ValidateResult{
		Session: s.ID(),
		Model:   model.Name,
		Report:  report,
		Price:   s.PriceStatus(),
	}
	if err := out.FormatTo(cmd.OutOrStdout(), result); err != nil {
		return err
	}
	if !report.Valid {
		return cli.ErrInvalid
	}
	return nil
}

// newSession creates a session with the configured ceiling and history.
func newSession(model *featuremodel.Model, cfg *config.Config, store history.Storage, rec session.Recorder) (*session.Session, error) {
	interp := interpreter.New(model)
	opts := []session.Option{session.WithAlertThreshold(cfg.Pricing.AlertThreshold)}
	if store != nil {
		opts = append(opts, session.WithHistory(cfg.History.Backend, store))
	}
	if rec != nil {
		opts = append(opts, session.WithRecorder(rec))
		if obs, ok := rec.(interpreter.Observer); ok {
			interp.WithObserver(obs)
		}
	}

	s := session.New(interp, opts...)
	if err := s.SetPriceLimit(cfg.Pricing.Limit); err != nil {
		return nil, err
	}
	return s, nil
}
