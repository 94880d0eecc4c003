// Package releaseconfig discovers and parses release config files. Each file
// defines one release domain:
//
//	releaseName: storefront
//	include:        # optional, wins when non-empty
//	  - web
//	  - ui
//	exclude:        # optional, used when include is empty
//	  - admin
//
// Files that fail to parse or validate are skipped and reported as warnings
// so one bad definition never blocks the others.
package releaseconfig

import (
	"context"
	"domainimpact/pkg/domain"
	"domainimpact/pkg/logger"
	"domainimpact/pkg/serrors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-faster/errors"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type document struct {
	ReleaseName string   `validate:"required" yaml:"releaseName"`
	Include     []string `yaml:"include"`
	Exclude     []string `yaml:"exclude"`
}

// Loader discovers release configs below a repository root.
type Loader struct {
	root     string
	validate *validator.Validate
}

// NewLoader returns a Loader resolving glob patterns against root.
func NewLoader(root string) *Loader {
	return &Loader{root: root, validate: validator.New(validator.WithRequiredStructEnabled())}
}

// Load finds every file matching pattern (doublestar syntax, relative to the
// root) and parses it into a domain. Files are visited in lexical order. The
// returned error is non-nil only for a malformed pattern or an unreadable
// root; per-file problems end up in the warnings.
func (l *Loader) Load(ctx context.Context, pattern string) ([]domain.Domain, []domain.Warning, error) {
	files, err := l.Discover(pattern)
	if err != nil {
		return nil, nil, err
	}

	logger.Debug(ctx, "release configs discovered", zap.String("pattern", pattern), zap.Strings("files", files))

	domains := make([]domain.Domain, 0, len(files))
	var warnings []domain.Warning
	for _, file := range files {
		d, err := l.loadFile(file)
		if err != nil {
			warnings = append(warnings, domain.Warning{Source: file, Message: err.Error()})

			continue
		}
		domains = append(domains, d)
	}

	return domains, warnings, nil
}

// Discover returns the files matching pattern, sorted, as slash-separated
// paths relative to the root.
func (l *Loader) Discover(pattern string) ([]string, error) {
	pattern = strings.TrimPrefix(filepath.ToSlash(pattern), "./")
	if !doublestar.ValidatePattern(pattern) {
		return nil, serrors.With(serrors.ErrInvalidArgument, "invalid release config pattern %q", pattern)
	}

	files, err := doublestar.Glob(os.DirFS(l.root), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrInvalidArgument, err, "could not glob %q", pattern)
	}
	sort.Strings(files)

	return files, nil
}

func (l *Loader) loadFile(file string) (domain.Domain, error) {
	raw, err := os.ReadFile(filepath.Join(l.root, filepath.FromSlash(file)))
	if err != nil {
		return domain.Domain{}, serrors.Wrap(serrors.ErrInvalidConfig, errors.Wrap(err, "read"), "could not read release config")
	}

	d, err := l.Parse(raw)
	if err != nil {
		return domain.Domain{}, serrors.Wrap(serrors.ErrInvalidConfig, err, "invalid release config")
	}
	d.ConfigPath = file

	return d, nil
}

// Parse decodes and validates a single release config. The returned domain
// has no ConfigPath and no resolved packages.
func (l *Loader) Parse(raw []byte) (domain.Domain, error) {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return domain.Domain{}, errors.Wrap(err, "decode")
	}

	doc.ReleaseName = strings.TrimSpace(doc.ReleaseName)
	if err := l.validate.Struct(doc); err != nil {
		return domain.Domain{}, errors.Wrap(err, "validate")
	}

	return domain.Domain{
		ReleaseName: doc.ReleaseName,
		Selection: domain.Selection{
			Include: doc.Include,
			Exclude: doc.Exclude,
		},
	}, nil
}
