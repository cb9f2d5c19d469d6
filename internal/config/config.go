package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
)

// DefaultFile is read from the working directory when no --config is given.
const DefaultFile = "ng-openapi-gen.yaml"

type Config struct {
	Input     string         `koanf:"input" validate:"required"`
	Output    string         `koanf:"output" validate:"required"`
	Templates TemplateConfig `koanf:"templates"`

	NamePrefix    string `koanf:"namePrefix"`
	NameSuffix    string `koanf:"nameSuffix"`
	ServicePrefix string `koanf:"servicePrefix"`
	ServiceSuffix string `koanf:"serviceSuffix"`
	EnumStyle     string `koanf:"enumStyle" validate:"omitempty,oneof=upper pascal alias"`
	DefaultTag    string `koanf:"defaultTag" validate:"required"`

	IncludeTags       []string `koanf:"includeTags"`
	ExcludeTags       []string `koanf:"excludeTags"`
	ExcludeParameters []string `koanf:"excludeParameters"`

	PruneUnusedTypes bool `koanf:"pruneUnusedTypes"`
	RemoveStaleFiles bool `koanf:"removeStaleFiles"`
}

type TemplateConfig struct {
	Dir string `koanf:"dir"`
}

// Defaults returns the values every configuration starts from.
func Defaults() map[string]any {
	return map[string]any{
		"output":           "src/app/api",
		"serviceSuffix":    "Service",
		"enumStyle":        "pascal",
		"defaultTag":       "Api",
		"pruneUnusedTypes": true,
		"removeStaleFiles": true,
	}
}

// Default returns the default configuration for the given input.
func Default(input string) *Config {
	return &Config{
		Input:            input,
		Output:           "src/app/api",
		ServiceSuffix:    "Service",
		EnumStyle:        "pascal",
		DefaultTag:       "Api",
		PruneUnusedTypes: true,
		RemoveStaleFiles: true,
	}
}

// BindFlags binds the configuration flags to cmd.
func BindFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringP("config", "c", "", "Config file path (default: "+DefaultFile+")")
	flags.StringP("input", "i", "", "OpenAPI document path or http(s) URL")
	flags.StringP("output", "o", "", "Output directory")
	flags.String("templates", "", "Custom templates directory")
	flags.String("name-prefix", "", "Prefix for generated type names")
	flags.String("name-suffix", "", "Suffix for generated type names")
	flags.String("service-prefix", "", "Prefix for generated service names")
	flags.String("service-suffix", "", "Suffix for generated service names")
	flags.String("enum-style", "", "Enum style: upper, pascal, alias")
	flags.String("default-tag", "", "Tag for operations that declare none")
	flags.StringSlice("include-tags", nil, "Tags to include (exclusive)")
	flags.StringSlice("exclude-tags", nil, "Tags to exclude")
	flags.StringSlice("exclude-parameters", nil, "Parameter names to exclude")
	flags.Bool("prune-unused-types", true, "Drop types not reachable from any service")
	flags.Bool("remove-stale-files", true, "Empty the output directory before writing")
}

func Load(cmd *cobra.Command) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	configFile, _ := cmd.Flags().GetString("config")
	if configFile == "" {
		configFile, _ = cmd.PersistentFlags().GetString("config")
	}
	if configFile == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			configFile = DefaultFile
		}
	}

	if configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := validateRaw(k.Raw()); err != nil {
			return nil, fmt.Errorf("invalid config file %s: %w", configFile, err)
		}
	}

	flagsMap := buildFlagsMap(cmd)
	if len(flagsMap) > 0 {
		if err := k.Load(confmap.Provider(flagsMap, "."), nil); err != nil {
			return nil, fmt.Errorf("loading flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func buildFlagsMap(cmd *cobra.Command) map[string]any {
	m := make(map[string]any)

	getString := func(name string) string {
		if v, err := cmd.Flags().GetString(name); err == nil && v != "" {
			return v
		}
		if v, err := cmd.PersistentFlags().GetString(name); err == nil && v != "" {
			return v
		}
		return ""
	}

	getStringSlice := func(name string) []string {
		if v, err := cmd.Flags().GetStringSlice(name); err == nil && len(v) > 0 {
			return v
		}
		if v, err := cmd.PersistentFlags().GetStringSlice(name); err == nil && len(v) > 0 {
			return v
		}
		return nil
	}

	flagChanged := func(name string) bool {
		return cmd.Flags().Changed(name) || cmd.PersistentFlags().Changed(name)
	}

	getBool := func(name string) bool {
		if v, err := cmd.Flags().GetBool(name); err == nil {
			return v
		}
		if v, err := cmd.PersistentFlags().GetBool(name); err == nil {
			return v
		}
		return false
	}

	stringFlags := map[string]string{
		"input":          "input",
		"output":         "output",
		"templates":      "templates.dir",
		"name-prefix":    "namePrefix",
		"name-suffix":    "nameSuffix",
		"service-prefix": "servicePrefix",
		"service-suffix": "serviceSuffix",
		"enum-style":     "enumStyle",
		"default-tag":    "defaultTag",
	}
	for flag, key := range stringFlags {
		if v := getString(flag); v != "" {
			m[key] = v
		}
	}

	sliceFlags := map[string]string{
		"include-tags":       "includeTags",
		"exclude-tags":       "excludeTags",
		"exclude-parameters": "excludeParameters",
	}
	for flag, key := range sliceFlags {
		if v := getStringSlice(flag); len(v) > 0 {
			m[key] = v
		}
	}

	boolFlags := map[string]string{
		"prune-unused-types": "pruneUnusedTypes",
		"remove-stale-files": "removeStaleFiles",
	}
	for flag, key := range boolFlags {
		if flagChanged(flag) {
			m[key] = getBool(flag)
		}
	}

	return m
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("koanf"), ",")
		return name
	})
	return v
}

func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", fe.Field())
	case "oneof":
		return fmt.Errorf("invalid %s: %v (valid: %s)", fe.Field(), fe.Value(), strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Errorf("invalid %s: %v", fe.Field(), fe.Value())
	}
}

// TagIncluded reports whether operations under tag become a service. A
// non-empty include list wins; otherwise the exclude list is subtracted.
func (c *Config) TagIncluded(tag string) bool {
	if len(c.IncludeTags) > 0 {
		return MatchesAny(c.IncludeTags, tag)
	}
	return !MatchesAny(c.ExcludeTags, tag)
}

// ParameterExcluded reports whether a parameter name is configured away.
func (c *Config) ParameterExcluded(name string) bool {
	return MatchesAny(c.ExcludeParameters, name)
}

// MatchesAny reports whether name equals, or matches as a glob, one of the
// patterns.
func MatchesAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if p == name {
			return true
		}
		if ok, err := doublestar.Match(p, name); err == nil && ok {
			return true
		}
	}
	return false
}
