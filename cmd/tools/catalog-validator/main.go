// cmd/tools/catalog-validator/main.go
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"envhealth-risk/pkg/survey"
)

func main() {
	if len(os.Args) < 2 {
		help(os.Stdout)
		os.Exit(1)
	}

	if err := run(os.Args[1], os.Args[2:], os.Stdout); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run(command string, args []string, out io.Writer) error {
	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	questionsPath := fs.String("questions", "", "Path to questions.yaml (default: embedded catalog)")
	configPath := fs.String("config", "", "Path to survey_config.yaml (default: embedded catalog)")
	strict := fs.Bool("strict", false, "Treat catalog warnings as errors (validate only)")

	switch command {
	case "validate", "categories", "sections", "sources":
	case "help":
		help(out)
		return nil
	default:
		help(out)
		return fmt.Errorf("unknown command %q", command)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	catalog, err := loadCatalog(*questionsPath, *configPath)
	if err != nil {
		return err
	}

	switch command {
	case "validate":
		return validate(catalog, *strict, out)
	case "categories":
		listCategories(catalog, out)
	case "sections":
		listSections(catalog, out)
	case "sources":
		listSources(catalog, out)
	}
	return nil
}

func loadCatalog(questionsPath, configPath string) (*survey.Catalog, error) {
	switch {
	case questionsPath == "" && configPath == "":
		return survey.LoadEmbedded()
	case questionsPath == "" || configPath == "":
		return nil, fmt.Errorf("-questions and -config must be given together")
	default:
		return survey.LoadFiles(questionsPath, configPath)
	}
}

func validate(catalog *survey.Catalog, strict bool, out io.Writer) error {
	warnings := catalog.Warnings()
	for _, w := range warnings {
		fmt.Fprintf(out, "warning: %s\n", w)
	}
	if strict && len(warnings) > 0 {
		return fmt.Errorf("%d catalog warning(s) in strict mode", len(warnings))
	}

	questions, scored := 0, 0
	for _, section := range catalog.Sections() {
		for _, q := range section.Questions {
			questions++
			if q.Scored() {
				scored++
			}
		}
	}
	fmt.Fprintf(out, "Catalog validation passed: %d sections, %d questions (%d scored), %d categories.\n",
		len(catalog.Sections()), questions, scored, len(catalog.CategoryNames()))
	return nil
}

func listCategories(catalog *survey.Catalog, out io.Writer) {
	for _, name := range catalog.CategoryNames() {
		info, ok := catalog.CategoryInfo(name)
		if !ok {
			fmt.Fprintf(out, "%s\n", name)
			continue
		}
		fmt.Fprintf(out, "%s\t%s\t%s\n", name, info.Color, info.Description)
	}
}

func listSections(catalog *survey.Catalog, out io.Writer) {
	for _, section := range catalog.Sections() {
		fmt.Fprintf(out, "%s\t%s\t%d questions\n", section.ID, section.Title, len(section.Questions))
	}
}

func listSources(catalog *survey.Catalog, out io.Writer) {
	for _, name := range catalog.SourceNames() {
		src := catalog.ResolveSource(name)
		fmt.Fprintf(out, "%s\torder=%s\tskip=%s\n", name, strings.Join(src.Order, ","), strings.Join(src.SkipSections, ","))
	}
}

func help(out io.Writer) {
	fmt.Fprintln(out, "Usage: catalog-validator <command> [-questions path -config path]")
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  validate    Validate the catalog and report warnings (-strict fails on warnings)")
	fmt.Fprintln(out, "  categories  List risk categories in scoring order")
	fmt.Fprintln(out, "  sections    List sections in catalog order")
	fmt.Fprintln(out, "  sources     List source configurations with resolved order")
}
