package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Default option values.
const (
	DefaultOutputDir      = "."
	DefaultTypeFile       = "listen-types.go"
	DefaultDocFile        = "public/event-doc.json"
	DefaultHTMLFile       = "public/events-flow.html"
	DefaultPackageDir     = "."
	DefaultDelimiter      = "."
	DefaultTitle          = "Events Documentation"
	DefaultVersion        = "1.0.0"
	DefaultMermaidVersion = "10"
)

// Section is the optional top-level key that scopes eventflow settings
// inside a shared configuration file.
const Section = "eventflow"

// ErrInvalidOptions is returned by Validate.
var ErrInvalidOptions = errors.New("invalid options")

// Options controls where a generation run writes its artifacts and how
// identifiers are derived.
type Options struct {
	OutputDir                 string `yaml:"outputDir" json:"outputDir" env:"EVENTFLOW_OUTPUT_DIR"`
	TypeFile                  string `yaml:"typeFile" json:"typeFile" env:"EVENTFLOW_TYPE_FILE"`
	DocFile                   string `yaml:"docFile" json:"docFile" env:"EVENTFLOW_DOC_FILE"`
	HTMLFile                  string `yaml:"htmlFile" json:"htmlFile" env:"EVENTFLOW_HTML_FILE"`
	GenerateTypeFileInPackage bool   `yaml:"generateTypeFileInPackage" json:"generateTypeFileInPackage" env:"EVENTFLOW_TYPE_FILE_IN_PACKAGE"`
	PackageDir                string `yaml:"packageDir" json:"packageDir" env:"EVENTFLOW_PACKAGE_DIR"`
	TypePackage               string `yaml:"typePackage" json:"typePackage" env:"EVENTFLOW_TYPE_PACKAGE"`
	Delimiter                 string `yaml:"delimiter" json:"delimiter" env:"EVENTFLOW_DELIMITER"`
	Title                     string `yaml:"title" json:"title" env:"EVENTFLOW_TITLE"`
	Version                   string `yaml:"version" json:"version" env:"EVENTFLOW_VERSION"`
	MermaidVersion            string `yaml:"mermaidVersion" json:"mermaidVersion" env:"EVENTFLOW_MERMAID_VERSION"`
	HistoryDB                 string `yaml:"historyDB" json:"historyDB" env:"EVENTFLOW_HISTORY_DB"`
}

// Defaults returns the default options.
func Defaults() Options {
	return Options{
		OutputDir:                 DefaultOutputDir,
		TypeFile:                  DefaultTypeFile,
		DocFile:                   DefaultDocFile,
		HTMLFile:                  DefaultHTMLFile,
		GenerateTypeFileInPackage: true,
		PackageDir:                DefaultPackageDir,
		Delimiter:                 DefaultDelimiter,
		Title:                     DefaultTitle,
		Version:                   DefaultVersion,
		MermaidVersion:            DefaultMermaidVersion,
	}
}

// OptionsFromConfig overlays the keys present in c onto the defaults.
// When c has an "eventflow" section, keys are read from it instead.
func OptionsFromConfig(c Config) Options {
	if c.Has(Section) {
		c = c.Sub(Section)
	}

	o := Defaults()
	o.OutputDir = c.String("outputDir", o.OutputDir)
	o.TypeFile = c.String("typeFile", o.TypeFile)
	o.DocFile = c.String("docFile", o.DocFile)
	o.HTMLFile = c.String("htmlFile", o.HTMLFile)
	o.GenerateTypeFileInPackage = c.Bool("generateTypeFileInPackage", o.GenerateTypeFileInPackage)
	o.PackageDir = c.String("packageDir", o.PackageDir)
	o.TypePackage = c.String("typePackage", o.TypePackage)
	o.Delimiter = c.String("delimiter", o.Delimiter)
	o.Title = c.String("title", o.Title)
	o.Version = c.String("version", o.Version)
	o.MermaidVersion = c.String("mermaidVersion", o.MermaidVersion)
	o.HistoryDB = c.String("historyDB", o.HistoryDB)
	return o
}

// FromEnv overlays EVENTFLOW_* environment variables onto base.
// Unset variables leave the corresponding field untouched.
func FromEnv(base Options) (Options, error) {
	if err := env.Parse(&base); err != nil {
		return Options{}, fmt.Errorf("parse env: %w", err)
	}
	return base, nil
}

// Load resolves options from defaults, then the file at path (skipped
// when path is empty), then the environment.
func Load(path string) (Options, error) {
	o := Defaults()
	if path != "" {
		c, err := FromFile(path)
		if err != nil {
			return Options{}, err
		}
		o = OptionsFromConfig(c)
	}

	o, err := FromEnv(o)
	if err != nil {
		return Options{}, err
	}
	if err := o.Validate(); err != nil {
		return Options{}, err
	}
	return o, nil
}

// Validate reports every empty required field.
func (o Options) Validate() error {
	var errs []error
	required := []struct {
		key, val string
	}{
		{"typeFile", o.TypeFile},
		{"docFile", o.DocFile},
		{"htmlFile", o.HTMLFile},
		{"delimiter", o.Delimiter},
	}
	for _, r := range required {
		if r.val == "" {
			errs = append(errs, fmt.Errorf("%w: %s is empty", ErrInvalidOptions, r.key))
		}
	}
	return errors.Join(errs...)
}

// Paths holds the resolved artifact destinations.
type Paths struct {
	TypeFile string
	DocFile  string
	HTMLFile string
}

// Paths resolves the artifact destinations. The type file resolves
// against PackageDir when GenerateTypeFileInPackage is set and against
// OutputDir otherwise; the documentation and diagram files always resolve
// against OutputDir. Absolute file names are kept as given.
func (o Options) Paths() Paths {
	typeBase := o.OutputDir
	if o.GenerateTypeFileInPackage {
		typeBase = o.PackageDir
	}
	return Paths{
		TypeFile: resolve(typeBase, o.TypeFile),
		DocFile:  resolve(o.OutputDir, o.DocFile),
		HTMLFile: resolve(o.OutputDir, o.HTMLFile),
	}
}

func resolve(base, name string) string {
	if filepath.IsAbs(name) || base == "" {
		return filepath.Clean(name)
	}
	return filepath.Join(base, name)
}
