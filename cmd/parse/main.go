package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"payproof/internal/config"
	"payproof/internal/extract"
	"payproof/internal/extract/docengine"
	"payproof/internal/paydoc"
	"payproof/internal/pipeline"
	"payproof/internal/raster"
	"payproof/internal/validator"
	"payproof/internal/vision"
	"payproof/internal/vision/openai"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	docTypeFlag := flag.String("type", "paystub", "document type: paystub or w2")
	outDir := flag.String("out", "", "directory for result JSON (default: alongside input)")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: parse [-type paystub|w2] [-out dir] file-or-dir...")
		os.Exit(1)
	}

	var docType paydoc.DocType
	switch strings.ToLower(*docTypeFlag) {
	case "paystub":
		docType = paydoc.DocTypePaystub
	case "w2":
		docType = paydoc.DocTypeW2
	default:
		return fmt.Errorf("unknown document type %q", *docTypeFlag)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	paths, err := collectInputs(flag.Args())
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no PDF files found in the given paths")
	}

	parser := buildParser(cfg)
	ctx := context.Background()

	var totalConfidence float64
	failed := 0
	for _, path := range paths {
		doc := parser.Parse(ctx, path, docType)
		totalConfidence += doc.ConfidenceScore
		if doc.Error != "" {
			failed++
		}

		outPath := resultPath(path, *outDir)
		if err := writeResult(outPath, doc); err != nil {
			return fmt.Errorf("writing %s: %w", outPath, err)
		}
		fmt.Printf("%s: confidence %.2f, %d warnings -> %s\n",
			filepath.Base(path), doc.ConfidenceScore, len(doc.ValidationWarnings), outPath)
	}

	fmt.Printf("\nParsed %d file(s), %d failed, average confidence %.2f\n",
		len(paths), failed, totalConfidence/float64(len(paths)))
	return nil
}

// collectInputs expands directories into their PDF files and passes plain
// files through.
func collectInputs(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", arg, err)
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("reading directory %s: %w", arg, err)
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
				paths = append(paths, filepath.Join(arg, e.Name()))
			}
		}
	}
	return paths, nil
}

func buildParser(cfg *config.Config) *pipeline.Orchestrator {
	engine := docengine.NewClient(&cfg.Engine)
	pdf := raster.NewPDF()
	enhancer := vision.NewEnhancer(openai.NewClient(&cfg.Vision), pdf, &cfg.Vision)

	schemas, err := validator.LoadSchemas()
	if err != nil {
		log.Fatalf("failed to load validation schemas: %v", err)
	}
	policy := validator.Policy{
		EarningsAbsTolerance: cfg.Validation.EarningsAbsTolerance,
		EarningsPctTolerance: cfg.Validation.EarningsPctTolerance,
		LowGrossFloor:        cfg.Validation.LowGrossFloor,
		HighGrossCeiling:     cfg.Validation.HighGrossCeiling,
	}

	return pipeline.New(
		pdf,
		extract.NewTableAdapter(engine),
		extract.NewTextAdapter(engine),
		enhancer,
		validator.New(policy, schemas),
	)
}

func resultPath(inputPath, outDir string) string {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath)) + "_parsed.json"
	if outDir != "" {
		return filepath.Join(outDir, base)
	}
	return filepath.Join(filepath.Dir(inputPath), base)
}

func writeResult(path string, doc *paydoc.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
