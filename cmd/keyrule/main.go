package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	keyrule "github.com/keyrulehq/keyrule"
	"github.com/keyrulehq/keyrule/formats"
	"github.com/keyrulehq/keyrule/i18n"
	"github.com/keyrulehq/keyrule/keywords"
)

var (
	logLevel   string
	schemaFile string
	failFast   bool
	skipSyntax bool
	quiet      bool
	language   string
)

// errInvalid marks a run that completed but found violations; main maps it to
// exit code 1 without an extra error line.
var errInvalid = errors.New("validation failed")

var rootCmd = &cobra.Command{
	Use:           "keyrule",
	Short:         "Validate JSON and YAML documents against keyword schemas",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLogging()
		i18n.SetLanguage(language)
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate --schema schema.json instance.json [instance.yaml...]",
	Short: "Validate instance documents against a schema",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runValidate,
}

var lintCmd = &cobra.Command{
	Use:   "lint schema.json [schema.yaml...]",
	Short: "Check schema documents for keyword syntax errors",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLint,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "disabled", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&language, "lang", "en", "diagnostic message language (en, ja)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress per-document results")

	validateCmd.Flags().StringVarP(&schemaFile, "schema", "s", "", "schema file (required)")
	validateCmd.Flags().BoolVar(&failFast, "fail-fast", false, "stop at the first violation per document")
	validateCmd.Flags().BoolVar(&skipSyntax, "skip-syntax", false, "trust the schema and skip syntax checking")
	_ = validateCmd.MarkFlagRequired("schema")

	rootCmd.AddCommand(validateCmd, lintCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errInvalid) {
			fmt.Fprintln(os.Stderr, "keyrule:", err)
		}
		os.Exit(1)
	}
}

func initLogging() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	switch strings.ToLower(logLevel) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.Disabled)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}

func newEngine() *keyrule.Engine {
	var opts []keyrule.Option
	if skipSyntax {
		opts = append(opts, keyrule.SkipSyntax())
	}
	e := keywords.NewEngine(opts...)
	// A fresh engine cannot already hold these names.
	_ = formats.Register(e)
	return e
}

func runValidate(cmd *cobra.Command, args []string) error {
	schema, err := decodeFile(schemaFile)
	if err != nil {
		return err
	}
	e := newEngine()

	failed := false
	for _, path := range args {
		doc, err := decodeFile(path)
		if err != nil {
			return err
		}
		log.Debug().Str("file", path).Msg("validating")
		report := e.ValidateReport(context.Background(), schema, doc, keyrule.ValidateOpt{FailFast: failFast})
		printResult(path, report)
		if !report.OK() {
			failed = true
		}
	}
	if failed {
		return errInvalid
	}
	return nil
}

func runLint(cmd *cobra.Command, args []string) error {
	e := newEngine()
	failed := false
	for _, path := range args {
		schema, err := decodeFile(path)
		if err != nil {
			return err
		}
		report := lintSchema(e, schema, keyrule.Root())
		printResult(path, report)
		if !report.OK() {
			failed = true
		}
	}
	if failed {
		return errInvalid
	}
	return nil
}

// lintSchema syntax-checks the fragment and every sub-schema reachable through
// the container keywords, so schema problems surface without any instance.
func lintSchema(e *keyrule.Engine, schema any, at keyrule.Pointer) keyrule.Report {
	obj, ok := schema.(map[string]any)
	if !ok {
		return keyrule.ReportOK
	}
	c := e.NewContext(schema)
	c.SchemaPath = at
	report := e.ValidateSyntax(c)

	descend := func(v any, p keyrule.Pointer) {
		report = report.Merge(lintSchema(e, v, p))
	}
	for _, key := range []string{"additionalItems", "additionalProperties"} {
		if sub, ok := obj[key].(map[string]any); ok {
			descend(sub, at.Field(key))
		}
	}
	switch items := obj["items"].(type) {
	case map[string]any:
		descend(items, at.Field("items"))
	case []any:
		for i, el := range items {
			if sub, ok := el.(map[string]any); ok {
				descend(sub, at.Field("items").Index(i))
			}
		}
	}
	for _, key := range []string{"properties", "patternProperties"} {
		members, ok := obj[key].(map[string]any)
		if !ok {
			continue
		}
		names := make([]string, 0, len(members))
		for name := range members {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if sub, ok := members[name].(map[string]any); ok {
				descend(sub, at.Field(key).Field(name))
			}
		}
	}
	return report
}

func decodeFile(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return keyrule.DecodeYAML(data)
	default:
		return keyrule.DecodeJSON(data)
	}
}

var (
	passMark = color.New(color.FgGreen, color.Bold).SprintFunc()
	failMark = color.New(color.FgRed, color.Bold).SprintFunc()
	pointer  = color.New(color.FgCyan).SprintFunc()
)

func printResult(path string, report keyrule.Report) {
	if report.OK() {
		if !quiet {
			fmt.Printf("%s %s\n", passMark("PASS"), path)
		}
		return
	}
	fmt.Printf("%s %s\n", failMark("FAIL"), path)
	for _, iss := range report.Issues() {
		msg := iss.Message
		if msg == "" {
			msg = i18n.T(iss.Code, nil)
		}
		if detail, ok := iss.Params["detail"].(string); ok && detail != "" {
			msg += ": " + detail
		}
		if iss.Keyword != "" {
			fmt.Printf("  %s at %s (schema %s): %s\n", iss.Keyword, pointer(iss.InstancePath), pointer(iss.SchemaPath), msg)
		} else {
			fmt.Printf("  %s at %s: %s\n", iss.Code, pointer(iss.InstancePath), msg)
		}
	}
}
