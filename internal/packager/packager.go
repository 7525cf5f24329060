package packager

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/skillforge-labs/skillforge/internal/branding"
	"github.com/skillforge-labs/skillforge/internal/logfields"
	"github.com/skillforge-labs/skillforge/internal/skill"
)

// ErrMissingMarker is returned when the source has no definition file.
var ErrMissingMarker = errors.New("skill definition file not found")

// ValidationError wraps a failed skill validation.
type ValidationError struct {
	Result *skill.ValidationResult
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Result.Summary()
}

// Report describes a written archive. Paths in Added and Skipped are archive
// names of the form <base>/<rel>.
type Report struct {
	Archive string
	Added   []string
	Skipped []string
}

// Packager validates and archives skill directories.
type Packager struct {
	// Validator checks the source before anything is written.
	// Defaults to skill.Validate.
	Validator func(dir string) (*skill.ValidationResult, error)
	Out       io.Writer
}

// New returns a Packager using skill.Validate.
func New(out io.Writer) *Packager {
	return &Packager{Validator: skill.Validate, Out: out}
}

// Package writes <outDir>/<base>.zip for the skill at src, where base is the
// final element of src. An empty outDir places the archive inside src.
func (p *Packager) Package(src, outDir string) (*Report, error) {
	src, err := filepath.Abs(src)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", src, err)
	}
	info, err := os.Stat(src)
	if err != nil {
		return nil, fmt.Errorf("skill folder not found: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", src)
	}
	if _, err := os.Stat(filepath.Join(src, branding.DefinitionFile())); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingMarker, filepath.Join(src, branding.DefinitionFile()))
	}

	validate := p.Validator
	if validate == nil {
		validate = skill.Validate
	}
	result, err := validate(src)
	if err != nil {
		return nil, fmt.Errorf("validating %s: %w", src, err)
	}
	if !result.Valid {
		return nil, &ValidationError{Result: result}
	}

	if outDir == "" {
		outDir = src
	} else {
		if outDir, err = filepath.Abs(outDir); err != nil {
			return nil, fmt.Errorf("resolving output directory: %w", err)
		}
		if err := os.MkdirAll(outDir, 0755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}

	base := filepath.Base(src)
	report := &Report{Archive: filepath.Join(outDir, base+".zip")}
	if err := p.write(src, base, report); err != nil {
		_ = os.Remove(report.Archive)
		return nil, err
	}

	slog.Debug("Packaged skill", logfields.Path(report.Archive), logfields.Count(len(report.Added)))
	return report, nil
}

func (p *Packager) write(src, base string, report *Report) error {
	f, err := os.Create(report.Archive)
	if err != nil {
		return fmt.Errorf("creating archive: %w", err)
	}
	zw := zip.NewWriter(f)

	walkErr := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path == report.Archive {
			return nil
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		name := base + "/" + rel

		if !d.Type().IsRegular() || !Included(rel) {
			report.Skipped = append(report.Skipped, name)
			p.printf("  Skipped: %s\n", name)
			return nil
		}
		if err := addFile(zw, path, name); err != nil {
			return err
		}
		report.Added = append(report.Added, name)
		p.printf("  Added: %s\n", name)
		return nil
	})

	if walkErr != nil {
		zw.Close()
		f.Close()
		return fmt.Errorf("creating zip file: %w", walkErr)
	}
	if err := zw.Close(); err != nil {
		f.Close()
		return fmt.Errorf("finalizing archive: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing archive: %w", err)
	}
	return nil
}

func addFile(zw *zip.Writer, path, name string) error {
	in, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	hdr, err := zip.FileInfoHeader(info)
	if err != nil {
		return fmt.Errorf("zip header for %s: %w", path, err)
	}
	hdr.Name = name
	hdr.Method = zip.Deflate

	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return fmt.Errorf("adding %s: %w", name, err)
	}
	if _, err := io.Copy(w, in); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

func (p *Packager) printf(format string, args ...any) {
	if p.Out != nil {
		fmt.Fprintf(p.Out, format, args...)
	}
}
