/*
Package cli provides command-line helpers for the configurator command.

Output Formatting:

Command results are printed as text, JSON or CSV:

	formatter, err := cli.NewFormatter(cli.FormatJSON)
	if err != nil {
		return err
	}
	return formatter.FormatTo(os.Stdout, report)

Text output uses the value's WriteText method when it has one and its
String method otherwise. CSV output requires the Tabular interface.

Exit Codes:

	0  success
	1  command failure
	2  the configuration or model is invalid
	3  bad configuration file or flags

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx, stop := cli.SetupSignalHandler()
	defer stop()
*/
package cli
