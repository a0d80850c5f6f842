package config

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/BurntSushi/toml"

	perrors "github.com/matzehuels/pandiff/pkg/errors"
	"github.com/matzehuels/pandiff/pkg/pipeline"
)

// Manifest lists the pairs of a batch run:
//
//	concurrency = 8
//	decorate = "html"
//
//	[[pair]]
//	before = "v1/intro.json"
//	after  = "v2/intro.json"
//	output = "diff/intro.json"
//
// Relative paths are resolved against the manifest's directory. A pair
// that leaves decorate or indent unset takes the manifest's top-level
// value, and a manifest that leaves them unset takes the output defaults
// passed to LoadManifest. An explicit indent = 0 writes compact JSON.
type Manifest struct {
	Concurrency int
	Decorate    string
	Indent      int
	Pairs       []pipeline.Options
}

// manifestFile is the decoded form of a manifest. Pointers tell unset
// keys from zero values.
type manifestFile struct {
	Concurrency int            `toml:"concurrency"`
	Decorate    *string        `toml:"decorate"`
	Indent      *int           `toml:"indent"`
	Pairs       []manifestPair `toml:"pair"`
}

type manifestPair struct {
	Before   string  `toml:"before"`
	After    string  `toml:"after"`
	Output   string  `toml:"output"`
	Decorate *string `toml:"decorate"`
	Indent   *int    `toml:"indent"`
}

// LoadManifest reads and normalizes a batch manifest. defaults supplies
// decorate and indent where the manifest sets neither.
func LoadManifest(path string, defaults OutputConfig) (*Manifest, error) {
	var f manifestFile
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, perrors.New(perrors.ErrCodeFileNotFound, "manifest %s: no such file", path)
		}
		return nil, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "manifest %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, perrors.New(perrors.ErrCodeInvalidInput, "manifest %s: unknown key %s", path, undecoded[0])
	}
	if len(f.Pairs) == 0 {
		return nil, perrors.New(perrors.ErrCodeInvalidInput, "manifest %s: no [[pair]] entries", path)
	}
	if f.Concurrency < 0 {
		return nil, perrors.New(perrors.ErrCodeInvalidInput, "manifest %s: concurrency must not be negative", path)
	}

	m := &Manifest{
		Concurrency: f.Concurrency,
		Decorate:    valueOr(f.Decorate, defaults.Decorate),
		Indent:      valueOr(f.Indent, defaults.Indent),
		Pairs:       make([]pipeline.Options, len(f.Pairs)),
	}

	base := filepath.Dir(path)
	for i, p := range f.Pairs {
		m.Pairs[i] = pipeline.Options{
			Before:   resolve(base, p.Before),
			After:    resolve(base, p.After),
			Output:   resolve(base, p.Output),
			Decorate: valueOr(p.Decorate, m.Decorate),
			Indent:   valueOr(p.Indent, m.Indent),
		}
	}
	return m, nil
}

func valueOr[T any](v *T, fallback T) T {
	if v == nil {
		return fallback
	}
	return *v
}

// resolve makes a relative manifest path relative to base. Empty paths
// and "-" are left alone so that batch validation reports them.
func resolve(base, path string) string {
	if path == "" || path == "-" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
