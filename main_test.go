package main

import (
	"archive/zip"
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPageFileName(t *testing.T) {
	cases := []struct {
		base  string
		pages int
		i     int
		want  string
	}{
		{"MLA Black On White 0.8mm 01", 1, 0, "MLA Black On White 0.8mm 01.dxf"},
		{"MLA Black On White 0.8mm 01", 2, 0, "MLA Black On White 0.8mm 01.dxf"},
		{"MLA Black On White 0.8mm 01", 2, 1, "MLA Black On White 0.8mm 02.dxf"},
		{"MLA Black On White 0.8mm 01", 3, 2, "MLA Black On White 0.8mm 03.dxf"},
		{"A", 2, 1, "A02.dxf"},
	}
	for _, c := range cases {
		if got := pageFileName(c.base, ".dxf", c.pages, c.i); got != c.want {
			t.Fatalf("pageFileName(%q, %d, %d) = %q, want %q", c.base, c.pages, c.i, got, c.want)
		}
	}
}

func writeQRStub(t *testing.T, dir, name string) {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 42, 42))
	for y := 0; y < 42; y++ {
		for x := 0; x < 42; x++ {
			img.SetGray(x, y, color.Gray{Y: 0})
		}
	}
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("create %s: %v", name, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", name, err)
	}
}

func TestRunGeneratesDXF(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()
	writeQRStub(t, inDir, "PUMP-01.png")
	writeQRStub(t, inDir, "VALVE-02_x2.png")

	err := run(inDir, outDir, "", "dxf", "Labels 01", false, true, filepath.Join(outDir, "debug.json"))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "Labels 01.dxf"))
	if err != nil {
		t.Fatalf("missing dxf output: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "ENTITIES") || !strings.Contains(out, "EOF") {
		t.Fatalf("dxf output malformed")
	}
	if !strings.Contains(out, "PUMP-01") || !strings.Contains(out, "VALVE-02") {
		t.Fatalf("label names missing from output")
	}

	if _, err := os.Stat(filepath.Join(outDir, "debug.json")); err != nil {
		t.Fatalf("missing debug dump: %v", err)
	}

	zr, err := zip.OpenReader(filepath.Join(outDir, "Labels 01.zip"))
	if err != nil {
		t.Fatalf("missing zip archive: %v", err)
	}
	defer zr.Close()
	if len(zr.File) != 1 || zr.File[0].Name != "Labels 01.dxf" {
		t.Fatalf("unexpected zip contents: %+v", zr.File)
	}
}

func TestRunNoQR(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()
	writeQRStub(t, inDir, "PUMP-01.png")

	if err := run(inDir, outDir, "", "dxf", "Labels 01", true, false, ""); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(outDir, "Labels 01.dxf"))
	if err != nil {
		t.Fatalf("missing dxf output: %v", err)
	}
	if bytes.Contains(data, []byte("SOLID")) {
		t.Fatalf("expected no QR squares with -no-qr")
	}
}

func TestRunConfigFile(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()
	writeQRStub(t, inDir, "PUMP-01.png")

	cfgPath := filepath.Join(inDir, "custom.sheet")
	cfg := `
sheet Custom v1 {
  canvas 130mm x 40mm
  label 65mm x 20mm
  text {
    org: "ACME"
  }
}
`
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if err := run(inDir, outDir, cfgPath, "dxf", "Labels 01", true, false, ""); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(outDir, "Labels 01.dxf"))
	if err != nil {
		t.Fatalf("missing dxf output: %v", err)
	}
	if !strings.Contains(string(data), "ACME") {
		t.Fatalf("config override not applied")
	}
}

func TestRunRejectsUnknownFormat(t *testing.T) {
	inDir := t.TempDir()
	writeQRStub(t, inDir, "PUMP-01.png")
	if err := run(inDir, t.TempDir(), "", "svg", "Labels 01", true, false, ""); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestRunEmptyInput(t *testing.T) {
	if err := run(t.TempDir(), t.TempDir(), "", "dxf", "Labels 01", false, false, ""); err == nil {
		t.Fatalf("expected error for empty input directory")
	}
}
