// Command dstvimport is a headless CLI that runs one or more DSTV/NC
// files through the lexer, parser, validator, and converter, then prints
// a one-line summary per profile and (optionally) the configured set of
// reports. There is no GUI surface: stdout/stderr is the only sink, per
// the ambient "Logging" contract.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/piwi3910/dstvcut/internal/config"
	"github.com/piwi3910/dstvcut/internal/csg"
	"github.com/piwi3910/dstvcut/internal/cutengine/detect"
	"github.com/piwi3910/dstvcut/internal/cutengine/handlers"
	"github.com/piwi3910/dstvcut/internal/dstv/convert"
	"github.com/piwi3910/dstvcut/internal/dstv/lexer"
	"github.com/piwi3910/dstvcut/internal/dstv/parser"
	"github.com/piwi3910/dstvcut/internal/dstv/validate"
	"github.com/piwi3910/dstvcut/internal/report"
	"github.com/piwi3910/dstvcut/internal/scene"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "dstvimport:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("dstvimport", flag.ContinueOnError)
	severity := fs.String("severity", "", "validation severity: basic, standard, strict (default from config)")
	pdfOut := fs.String("pdf", "", "write a validation/cut-list PDF report to this path")
	bomOut := fs.String("bom", "", "write a bill-of-materials workbook to this path")
	dxfOut := fs.String("dxf", "", "write classified cut contours as a DXF file")
	labelsOut := fs.String("labels", "", "write QR piece-mark labels as a PDF file")
	configPath := fs.String("config", "", "path to a pipeline config JSON file (default ~/.dstvcut/config.json)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	paths := fs.Args()
	if len(paths) == 0 {
		return fmt.Errorf("usage: dstvimport [flags] file.nc [file2.nc ...]")
	}

	cfgPath := *configPath
	if cfgPath == "" {
		cfgPath = config.DefaultConfigPath()
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	sev := severityFromConfig(cfg.ValidationSeverity)
	if *severity != "" {
		sev = severityFromConfig(*severity)
	}

	type outcome struct {
		path   string
		report report.ProfileReport
	}
	outcomes := make([][]outcome, len(paths))

	g, _ := errgroup.WithContext(context.Background())
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			text, err := os.ReadFile(p)
			if err != nil {
				return fmt.Errorf("%s: %w", p, err)
			}
			tokens := lexer.Lex(string(text))
			parsed := parser.Parse(tokens)
			if parsed.Err != nil {
				return fmt.Errorf("%s: %w", p, parsed.Err)
			}
			vcfg := validate.Default()
			vcfg.MaxProfileLength = cfg.MaxProfileLength
			vcfg.MaxHoleDiameter = cfg.MaxHoleDiameter
			crossFile := validate.Result{IsValid: true}
			if sev == validate.Strict && len(parsed.Profiles) > 1 {
				crossFile = validate.ValidateMultiProfile(parsed.Profiles, vcfg)
			}
			for _, prof := range parsed.Profiles {
				res := validate.Validate([]parser.RawProfile{prof}, sev, vcfg)
				res.Errors = append(res.Errors, crossFile.Errors...)
				res.Warnings = append(res.Warnings, crossFile.Warnings...)
				res.IsValid = res.IsValid && crossFile.IsValid
				outcomes[i] = append(outcomes[i], outcome{path: p, report: report.ProfileReport{Profile: prof, Result: res}})
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var reports []report.ProfileReport
	for _, fileOutcomes := range outcomes {
		for _, o := range fileOutcomes {
			fmt.Println(summaryLine(o.path, o.report))
			reports = append(reports, o.report)
		}
	}

	if err := runCutEngine(reports, cfg, *dxfOut); err != nil {
		fmt.Fprintln(os.Stderr, "dstvimport: cut engine:", err)
	}

	if *pdfOut != "" {
		if err := report.ExportValidationPDF(*pdfOut, reports); err != nil {
			return fmt.Errorf("writing pdf report: %w", err)
		}
	}
	if *bomOut != "" {
		if err := report.ExportBOM(*bomOut, reports); err != nil {
			return fmt.Errorf("writing bom: %w", err)
		}
	}
	if *labelsOut != "" {
		if err := report.ExportLabels(*labelsOut, reports); err != nil {
			return fmt.Errorf("writing labels: %w", err)
		}
	}
	return nil
}

func severityFromConfig(s string) validate.Severity {
	switch s {
	case "strict":
		return validate.Strict
	case "basic":
		return validate.Basic
	default:
		return validate.Standard
	}
}

func summaryLine(path string, r report.ProfileReport) string {
	status := "OK"
	if !r.Result.IsValid {
		status = "FAIL"
	}
	return fmt.Sprintf("[%s] %s: %s (%s) — %d error(s), %d warning(s)",
		status, path, r.Profile.Header.PartID, r.Profile.Header.Designation,
		len(r.Result.Errors), len(r.Result.Warnings))
}

// runCutEngine converts every valid profile into a scene, runs each
// feature through the cut-kind detector and handler registry, and
// reports how many features became concrete subtraction volumes. This
// is a smoke exercise of the cutengine/csg pipeline from a single
// process, not a full materialization step (no geometric kernel is
// implemented — csg.Evaluator is a pluggable, unimplemented seam here).
func runCutEngine(reports []report.ProfileReport, cfg config.Config, dxfPath string) error {
	var profiles []parser.RawProfile
	for _, r := range reports {
		if r.Result.IsValid {
			profiles = append(profiles, r.Profile)
		}
	}
	if len(profiles) == 0 {
		return nil
	}

	mapping := convert.FaceMappingDominant
	if cfg.FaceMappingConvention == "alternate" {
		mapping = convert.FaceMappingAlternate
	}
	converted := convert.Convert(profiles, convert.Options{FaceMapping: mapping})
	for _, w := range converted.Warnings {
		fmt.Fprintln(os.Stderr, "dstvimport: convert:", w)
	}

	registry := handlers.NewRegistry()
	handled := 0
	var contours []report.Contour
	for _, el := range converted.Scene.Elements {
		for _, f := range el.Features {
			if f.Kind != scene.FeatureCut && f.Kind != scene.FeatureEndCut && f.Kind != scene.FeatureNotch {
				continue
			}
			kind := detect.Detect(f, el)
			solid, _, err := registry.Dispatch(kind, f, el)
			if err != nil {
				continue
			}
			mesh := csg.BuildCutMesh(solid, el)
			if mesh.VertexCount() > 0 {
				handled++
			}
			if len(f.Points) >= 3 {
				contours = append(contours, report.Contour{Face: f.Face, Points: toParserPoints(f.Points)})
			}
		}
	}
	fmt.Printf("cut engine: %d feature(s) resolved to subtraction volumes\n", handled)

	if dxfPath != "" && len(contours) > 0 {
		if err := report.ExportDXF(dxfPath, contours); err != nil {
			return fmt.Errorf("writing dxf: %w", err)
		}
	}
	return nil
}

func toParserPoints(pts []scene.Point2D) []parser.Point2D {
	out := make([]parser.Point2D, len(pts))
	for i, p := range pts {
		out[i] = parser.Point2D{X: p.X, Y: p.Y}
	}
	return out
}
