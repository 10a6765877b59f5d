package main

import (
	"archive/zip"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/wanshade/labels/dsl"
	"github.com/wanshade/labels/input"
	"github.com/wanshade/labels/layout"
	"github.com/wanshade/labels/renderer"
	canvasrenderer "github.com/wanshade/labels/renderer/canvas"
	dxfrenderer "github.com/wanshade/labels/renderer/dxf"
)

func main() {
	inDir := flag.String("in", "qrcodes", "directory of QR image files")
	outDir := flag.String("out", "output", "output directory")
	configPath := flag.String("config", "", "sheet configuration file (.sheet); defaults apply when empty")
	format := flag.String("format", "dxf", "output format: dxf or pdf")
	baseName := flag.String("base", "MLA Black On White 0.8mm 01", "base name for output files")
	noQR := flag.Bool("no-qr", false, "lay out labels without QR splices")
	zipOut := flag.Bool("zip", false, "also pack the generated files into a zip archive")
	debugPath := flag.String("debug", "", "layout debug JSON output path")
	flag.Parse()

	if err := run(*inDir, *outDir, *configPath, *format, *baseName, *noQR, *zipOut, *debugPath); err != nil {
		log.Fatalf("generate labels: %v", err)
	}
}

// run wires input, layout and rendering together.
func run(inDir, outDir, configPath, format, baseName string, noQR, zipOut bool, debugPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	files, err := input.ReadDir(inDir)
	if err != nil {
		return err
	}
	labels, rasters := input.Normalize(files)
	if len(labels) == 0 {
		return fmt.Errorf("no label images found in %s", inDir)
	}
	if noQR {
		rasters = nil
	}

	result, err := layout.Build(labels, rasters, cfg)
	if err != nil {
		return fmt.Errorf("layout: %w", err)
	}

	if debugPath != "" {
		if err := writeDebug(result, debugPath); err != nil {
			return err
		}
	}

	var r renderer.Renderer
	switch format {
	case "dxf":
		r = dxfrenderer.NewRenderer(cfg)
	case "pdf":
		r = canvasrenderer.NewRenderer(cfg)
	default:
		return fmt.Errorf("unknown format %q (want dxf or pdf)", format)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	var written []string
	for i := range result.Pages {
		data, err := r.RenderPage(&result.Pages[i])
		if err != nil {
			return fmt.Errorf("render page %d: %w", i+1, err)
		}
		name := pageFileName(baseName, r.Ext(), len(result.Pages), i)
		path := filepath.Join(outDir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		written = append(written, path)
		fmt.Printf("wrote %s (%d labels)\n", path, result.Pages[i].Labels)
	}

	if zipOut {
		zipPath := filepath.Join(outDir, baseName+".zip")
		if err := writeZip(zipPath, written); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", zipPath)
	}
	return nil
}

func loadConfig(path string) (layout.SheetConfig, error) {
	if path == "" {
		return layout.DefaultConfig(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return layout.SheetConfig{}, fmt.Errorf("open config %s: %w", path, err)
	}
	defer f.Close()

	doc, err := dsl.Parse(f)
	if err != nil {
		return layout.SheetConfig{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return layout.FromDocument(doc)
}

// pageFileName names page i (0-based) of a run. A single page keeps the base
// name as-is; multi-page runs replace the trailing two characters of the base
// with the 1-based page number, so "... 0.8mm 01" becomes "... 0.8mm 02" and
// so on.
func pageFileName(base, ext string, pages, i int) string {
	if pages <= 1 {
		return base + ext
	}
	stem := base
	if len(stem) >= 2 {
		stem = stem[:len(stem)-2]
	}
	return fmt.Sprintf("%s%02d%s", stem, i+1, ext)
}

func writeDebug(result *layout.Result, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("create debug dir: %w", err)
	}
	f, err := os.Create(debugPath)
	if err != nil {
		return fmt.Errorf("create debug file: %w", err)
	}
	defer f.Close()
	if err := layout.WriteDebugJSON(f, result); err != nil {
		return fmt.Errorf("write debug JSON: %w", err)
	}
	return nil
}

func writeZip(zipPath string, files []string) error {
	out, err := os.Create(zipPath)
	if err != nil {
		return fmt.Errorf("create zip: %w", err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		w, err := zw.Create(filepath.Base(path))
		if err != nil {
			return fmt.Errorf("zip entry %s: %w", filepath.Base(path), err)
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("zip write %s: %w", filepath.Base(path), err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finish zip: %w", err)
	}
	return nil
}
