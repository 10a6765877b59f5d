// Package input turns a batch of uploaded QR image files into the ordered
// label sequence and raster registry consumed by the layout.
package input

import (
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// File is one uploaded image, identified by its filename stem (extension
// already stripped). Image may be nil when the file could not be decoded;
// the stem still participates in label expansion.
type File struct {
	Stem  string
	Image image.Image
}

// quantityPattern splits "<base>_x<N>" stems into a base name repeated N
// times. Only N >= 1 counts; "_x0" and non-numeric suffixes stay literal.
var quantityPattern = regexp.MustCompile(`^(.+)_x([0-9]+)$`)

// Normalize expands quantity-suffixed stems and builds the raster registry.
// Files are processed in stem order regardless of input order. When two
// files normalize to the same label name, the later raster wins and the
// collision is logged.
func Normalize(files []File) ([]string, map[string]image.Image) {
	sorted := append([]File(nil), files...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Stem < sorted[j].Stem })

	var labels []string
	rasters := make(map[string]image.Image)
	register := func(name string, img image.Image) {
		if img == nil {
			return
		}
		if _, dup := rasters[name]; dup {
			log.Printf("warning: duplicate raster for label %q, keeping the later file", name)
		}
		rasters[name] = img
	}

	for _, f := range sorted {
		if m := quantityPattern.FindStringSubmatch(f.Stem); m != nil {
			if n, err := strconv.Atoi(m[2]); err == nil && n >= 1 {
				for i := 0; i < n; i++ {
					labels = append(labels, m[1])
				}
				register(m[1], f.Image)
				continue
			}
		}
		labels = append(labels, f.Stem)
		register(f.Stem, f.Image)
	}
	return labels, rasters
}

// ReadDir loads every image file in dir (non-recursive) and returns them as
// Files keyed by stem. Files with unknown extensions are ignored; files that
// fail to decode are kept with a nil raster so their label still prints.
func ReadDir(dir string) ([]File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input dir: %w", err)
	}
	var files []File
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if !decodableExt(ext) {
			continue
		}
		stem := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		img, err := DecodeFile(filepath.Join(dir, e.Name()))
		if err != nil {
			log.Printf("warning: skipping raster %s: %v", e.Name(), err)
			img = nil
		}
		files = append(files, File{Stem: stem, Image: img})
	}
	return files, nil
}
