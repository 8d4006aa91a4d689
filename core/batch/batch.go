// Package batch runs the extract, format and emit pipeline over single
// images and over the configured input directory.
package batch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/ankit-chaubey/image-metadata-report/core"
	"github.com/ankit-chaubey/image-metadata-report/core/config"
	"github.com/ankit-chaubey/image-metadata-report/core/image"
	"github.com/ankit-chaubey/image-metadata-report/core/report"
)

// ErrAborted is returned when a run stops at an image whose XMP could not
// be read and the policy is config.OnErrorAbort.
var ErrAborted = errors.New("run aborted")

// Runner processes images one at a time. It keeps no state between images.
type Runner struct {
	cfg     *config.Config
	ex      *image.Extractor
	printer *core.Printer
	log     *zap.Logger
}

// New returns a Runner. A nil logger discards log output.
func New(cfg *config.Config, printer *core.Printer, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{
		cfg:     cfg,
		ex:      image.NewExtractor(log),
		printer: printer,
		log:     log,
	}
}

// Report extracts and formats the metadata of the image at path. XMP
// failures follow the xmp.on_error policy.
func (r *Runner) Report(path string) (report.Report, error) {
	exif := r.ex.Exif(path)

	xmp, err := r.ex.Xmp(path)
	if err != nil {
		if r.cfg.XMP.OnError != config.OnErrorSkip {
			return report.Report{}, fmt.Errorf("%w: %w", ErrAborted, err)
		}
		r.log.Error("Error reading XMP data", zap.String("path", path), zap.Error(err))
		xmp = nil
	}
	return report.Format(xmp, exif), nil
}

// View prints the report of one image.
func (r *Runner) View(path string) error {
	rep, err := r.Report(path)
	if err != nil {
		return err
	}
	return r.printer.PrintReport(path, rep)
}

// Save writes the report of one image into the output directory and
// returns the report path.
func (r *Runner) Save(path string) (string, error) {
	rep, err := r.Report(path)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(r.cfg.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", r.cfg.OutputDir, err)
	}
	return core.SaveReport(r.cfg.OutputDir, path, r.cfg.ReportSuffix, rep.String())
}

// Run creates the configured directories, then reports every regular file
// of the input directory in name order.
func (r *Runner) Run() error {
	if err := r.cfg.EnsureDirs(); err != nil {
		return err
	}
	images, err := ListImages(r.cfg.InputDir)
	if err != nil {
		return err
	}
	r.printer.PrintInfo(fmt.Sprintf("Found %d images", len(images)))

	for _, path := range images {
		r.log.Debug("Processing image", zap.String("path", path))
		out, err := r.Save(path)
		if err != nil {
			return err
		}
		r.printer.PrintSuccess(fmt.Sprintf("Saved metadata from %s in %s", path, out))
	}
	return nil
}

// ListImages returns the regular files directly inside dir, sorted by name.
// Symlinks are followed; subdirectories are not descended into.
func ListImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}
	var paths []string
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths, nil
}
