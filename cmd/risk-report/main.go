// cmd/risk-report/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"envhealth-risk/internal/common/config"
	apperrors "envhealth-risk/internal/common/errors"
	"envhealth-risk/internal/common/logger"
	"envhealth-risk/internal/common/observability"
	"envhealth-risk/internal/common/validation"
	"envhealth-risk/internal/models"
	buildriskprofile "envhealth-risk/internal/workers/scoring/build-risk-profile"
	evaluatecondition "envhealth-risk/internal/workers/survey/evaluate-condition"
	resolvesurveyplan "envhealth-risk/internal/workers/survey/resolve-survey-plan"
	"envhealth-risk/pkg/survey"
)

type options struct {
	responsesPath string
	configPath    string
	source        string
	plan          bool
	pretty        bool
	metricsOut    string
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "risk-report: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string) (*options, error) {
	fs := flag.NewFlagSet("risk-report", flag.ContinueOnError)
	opts := &options{}
	fs.StringVar(&opts.responsesPath, "responses", "-", "Path to the JSON response set (- for stdin)")
	fs.StringVar(&opts.configPath, "config", "", "Path to a config file (default: configs/config.yaml lookup)")
	fs.StringVar(&opts.source, "source", "", "Source configuration name (default: survey.default_source)")
	fs.BoolVar(&opts.plan, "plan", false, "Print the survey plan for the source instead of a risk profile")
	fs.BoolVar(&opts.pretty, "pretty", false, "Indent JSON output")
	fs.StringVar(&opts.metricsOut, "metrics-out", "", "Write prometheus metrics to this file after the run")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return opts, nil
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer func() { _ = zapLog.Sync() }()
	log := logger.NewZapAdapter(zapLog)
	evaluatecondition.SetLogger(log)

	catalog, err := loadCatalog(cfg.Survey)
	if err != nil {
		return err
	}
	for _, warning := range catalog.Warnings() {
		log.Warn("catalog warning", map[string]interface{}{"warning": warning})
	}

	responses, err := readResponses(opts.responsesPath, stdin)
	if err != nil {
		return err
	}

	source := opts.source
	if source == "" {
		source = cfg.Survey.DefaultSource
	}

	var result interface{}
	if opts.plan {
		planner := resolvesurveyplan.NewHandler(&resolvesurveyplan.Config{DefaultSource: cfg.Survey.DefaultSource}, catalog, log)
		result, err = planner.Execute(context.Background(), &resolvesurveyplan.Input{Source: source, Responses: responses})
	} else {
		obs := observability.NewNoop()
		if cfg.Metrics.Enabled {
			obs = observability.New(cfg.Metrics.ServiceName)
		}
		defer obs.Shutdown()

		handler := buildriskprofile.NewHandler(buildriskprofile.FromAppConfig(cfg), catalog, obs, log)
		result, err = handler.Execute(context.Background(), &buildriskprofile.Input{Responses: responses, Source: source})
	}
	if err != nil {
		return err
	}

	if err := writeJSON(stdout, result, opts.pretty); err != nil {
		return err
	}

	if opts.metricsOut != "" {
		if err := prometheus.WriteToTextfile(opts.metricsOut, prometheus.DefaultGatherer); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

func loadCatalog(cfg config.SurveyConfig) (*survey.Catalog, error) {
	if cfg.UsesEmbeddedCatalog() {
		return survey.Default()
	}
	return survey.LoadFiles(cfg.QuestionsPath, cfg.ConfigPath)
}

func readResponses(path string, stdin io.Reader) (models.Responses, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open responses: %w", err)
		}
		defer f.Close()
		r = f
	}
	return decodeResponses(r)
}

// decodeResponses reads a {section: {question: answer}} document and checks
// its shape before handing it to the engine.
func decodeResponses(r io.Reader) (models.Responses, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var document interface{}
	if err := dec.Decode(&document); err != nil {
		return nil, apperrors.NewResponsesInvalidError(fmt.Sprintf("decode: %v", err))
	}

	result, err := validation.ValidateResponseSet(document)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return nil, apperrors.NewResponsesInvalidError(strings.Join(result.GetErrorMessages(), "; ")).
			WithMetadata("errors", result.Errors)
	}

	sections, _ := document.(map[string]interface{})
	responses := make(models.Responses, len(sections))
	for id, answers := range sections {
		if m, ok := answers.(map[string]interface{}); ok {
			responses[id] = m
		}
	}
	return responses, nil
}

func writeJSON(w io.Writer, v interface{}, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
