// Command opdesc scans Go source for @opdesc-annotated handler types and
// manages the YAML service descriptions derived from them.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/vexley/opdesc/internal/annotations"
	"github.com/vexley/opdesc/internal/cli"
	"github.com/vexley/opdesc/pkg/opdesc"
	"github.com/vexley/opdesc/pkg/opdesc/loader"
)

var (
	verboseFlag bool
	quietFlag   bool
	logJSONFlag bool
	strictFlag  bool
	outFlag     string
	nameFlag    string
)

func main() {
	root := &cobra.Command{
		Use:           "opdesc",
		Short:         "Derive and check service command descriptions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose output")
	root.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "only show errors")
	root.PersistentFlags().BoolVar(&logJSONFlag, "log-json", false, "emit JSON logs instead of colorized output")

	scanCmd := &cobra.Command{
		Use:   "scan [directories...]",
		Short: "Scan Go source for annotated handler types and write a description",
		Long: "Recursively scans directories for Go types whose doc comments carry\n" +
			"@opdesc annotations, derives command descriptors from them, and writes a\n" +
			"YAML service description. Directories support Go-style './...' patterns.",
		Args: cobra.MinimumNArgs(1),
		RunE: runScan,
	}
	scanCmd.Flags().StringVarP(&outFlag, "out", "o", "", "output file (defaults to stdout)")
	scanCmd.Flags().StringVar(&nameFlag, "name", "", "description name")
	scanCmd.Flags().BoolVar(&strictFlag, "strict", false, "parse annotations with the grammar scanner instead of the regex scanner")
	root.AddCommand(scanCmd)

	checkCmd := &cobra.Command{
		Use:   "check [files...]",
		Short: "Load description files and report definition problems",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runCheck,
	}
	root.AddCommand(checkCmd)

	if err := root.Execute(); err != nil {
		reporter().Error("%v", err)
		os.Exit(1)
	}
}

func reporter() *cli.Reporter {
	level := cli.LevelNormal
	if quietFlag {
		level = cli.LevelQuiet
	} else if verboseFlag {
		level = cli.LevelVerbose
	}
	return cli.NewReporter(level)
}

func logger() zerolog.Logger {
	level := zerolog.InfoLevel
	if quietFlag {
		level = zerolog.ErrorLevel
	} else if verboseFlag {
		level = zerolog.DebugLevel
	}
	return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
}

func runScan(_ *cobra.Command, args []string) error {
	report := reporter()

	var scanner annotations.Scanner
	if strictFlag {
		scanner = annotations.NewGrammarScanner()
	}
	deriver := opdesc.NewDeriver(scanner)

	if logJSONFlag {
		log := logger()
		log.Debug().Strs("patterns", args).Msg("scanning")
	} else {
		report.Section("Scanning for annotated handlers")
	}

	desc, err := cli.NewSourceScanner(deriver).Scan(nameFlag, args)
	if err != nil {
		return err
	}

	if logJSONFlag {
		log := logger()
		log.Info().Int("commands", desc.Len()).Msg("scan complete")
	} else {
		report.Success("derived %d command(s)", desc.Len())
		for _, cmd := range desc.Commands() {
			report.Debug("  %s (%s, %d params)", cmd.Name(), cmd.Class(), cmd.Len())
		}
	}

	if outFlag == "" {
		data, err := loader.Marshal(desc)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	}

	if err := loader.Write(outFlag, desc); err != nil {
		return err
	}
	if !logJSONFlag {
		report.Success("wrote %s", outFlag)
	}
	return nil
}

func runCheck(_ *cobra.Command, args []string) error {
	report := reporter()
	failed := false

	for _, path := range args {
		desc, err := loader.Load(path)
		if err != nil {
			report.Error("%v", err)
			failed = true
			continue
		}

		problems := cli.CheckDescription(desc, nil)
		if logJSONFlag {
			log := logger()
			for _, problem := range problems {
				log.Warn().Str("file", path).Str("command", problem.Command).Msg(problem.Message)
			}
		} else {
			report.Section(path)
			for _, problem := range problems {
				report.Warn("%s", problem)
			}
		}

		if len(problems) == 0 {
			report.Success("%s: %d command(s), no problems", path, desc.Len())
		} else {
			failed = true
		}
	}

	if failed {
		return fmt.Errorf("description check failed")
	}
	return nil
}
