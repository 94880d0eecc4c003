// Package manifest reads the project manifest: the ordered list of packages
// known to the repository and the directory each one lives in.
//
// The manifest is a YAML (or JSON) document:
//
//	packages:
//	  - name: web
//	    path: apps/web
//	  - name: ui
//	    path: packages/ui
package manifest

import (
	"context"
	"domainimpact/pkg/domain"
	"domainimpact/pkg/logger"
	"domainimpact/pkg/serrors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type document struct {
	Packages []entry `validate:"unique=Name,dive" yaml:"packages"`
}

type entry struct {
	Name string `validate:"required" yaml:"name"`
	Path string `validate:"required" yaml:"path"`
}

// Loader reads manifests relative to a repository root.
type Loader struct {
	root     string
	validate *validator.Validate
}

// NewLoader returns a Loader resolving manifest paths against root.
func NewLoader(root string) *Loader {
	return &Loader{root: root, validate: validator.New(validator.WithRequiredStructEnabled())}
}

// Load reads and validates the manifest at path. A missing file is reported
// as serrors.ErrNotFound; anything unparsable or invalid as
// serrors.ErrInvalidManifest. Both are fatal for a detection run.
func (l *Loader) Load(ctx context.Context, path string) ([]domain.Package, error) {
	full := filepath.Join(l.root, path)

	raw, err := os.ReadFile(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, serrors.Wrap(serrors.ErrNotFound, err, "manifest %q not found", path)
		}

		return nil, serrors.Wrap(serrors.ErrInvalidManifest, errors.Wrap(err, "read"), "could not read manifest %q", path)
	}

	pkgs, err := l.Parse(raw)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrInvalidManifest, err, "invalid manifest %q", path)
	}

	logger.Debug(ctx, "manifest loaded", zap.String("path", path), zap.Int("packages", len(pkgs)))

	return pkgs, nil
}

// Parse decodes and validates manifest content.
func (l *Loader) Parse(raw []byte) ([]domain.Package, error) {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrap(err, "decode")
	}

	if err := l.validate.Struct(doc); err != nil {
		return nil, errors.Wrap(err, "validate")
	}

	pkgs := make([]domain.Package, 0, len(doc.Packages))
	for _, e := range doc.Packages {
		pkgs = append(pkgs, domain.Package{Name: e.Name, Path: CleanPath(e.Path)})
	}

	return pkgs, nil
}

// CleanPath turns a manifest path into the form changed files are reported
// in: forward slashes, no leading "./" and no trailing "/".
func CleanPath(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}

	return strings.TrimRight(p, "/")
}
