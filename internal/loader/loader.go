// Package loader reads an OpenAPI document from disk or over HTTP. Local
// references are checked against the raw tree first, then libopenapi builds
// the v3 model that is transformed into the generator's document. Validation
// findings are reported as warnings.
package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/avast/retry-go"
	getter "github.com/hashicorp/go-getter"
	"github.com/pb33f/libopenapi"
	validator "github.com/pb33f/libopenapi-validator"
	"github.com/pb33f/libopenapi/datamodel"

	"github.com/remkoboschker/ng-openapi-gen/internal/model"
)

var (
	fetchAttempts uint = 3
	fetchDelay         = 500 * time.Millisecond
)

type Result struct {
	Document *model.Document
	Version  string
	Warnings []string
	RawData  []byte
}

// IsRemote reports whether input is fetched over HTTP.
func IsRemote(input string) bool {
	return strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://")
}

// Load reads the document named by input, a file path or an http(s) URL.
func Load(ctx context.Context, input string) (*Result, error) {
	if IsRemote(input) {
		data, err := fetch(ctx, input)
		if err != nil {
			return nil, err
		}
		return load(data, nil)
	}
	return LoadFile(input)
}

func LoadFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading spec file: %w", err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving absolute path: %w", err)
	}

	config := &datamodel.DocumentConfiguration{
		BasePath:            filepath.Dir(absPath),
		AllowFileReferences: true,
	}

	return load(data, config)
}

// fetch downloads url into a temporary file, retrying transient failures.
func fetch(ctx context.Context, url string) ([]byte, error) {
	dir, err := os.MkdirTemp("", "ng-openapi-gen-")
	if err != nil {
		return nil, fmt.Errorf("creating download directory: %w", err)
	}
	defer os.RemoveAll(dir)

	dst := filepath.Join(dir, "openapi")
	err = retry.Do(
		func() error {
			client := &getter.Client{
				Ctx:  ctx,
				Src:  url,
				Dst:  dst,
				Mode: getter.ClientModeFile,
			}
			return client.Get()
		},
		retry.Context(ctx),
		retry.Attempts(fetchAttempts),
		retry.Delay(fetchDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("downloading %s: %w", url, err)
	}

	data, err := os.ReadFile(dst)
	if err != nil {
		return nil, fmt.Errorf("reading downloaded spec: %w", err)
	}
	return data, nil
}

// Parse loads an in-memory document. Only local references are followed.
func Parse(data []byte) (*Result, error) {
	return load(data, nil)
}

func load(data []byte, config *datamodel.DocumentConfiguration) (*Result, error) {
	var doc libopenapi.Document
	var err error

	if config != nil {
		doc, err = libopenapi.NewDocumentWithConfiguration(data, config)
	} else {
		doc, err = libopenapi.NewDocument(data)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing OpenAPI document: %w", err)
	}

	version := doc.GetVersion()
	if !strings.HasPrefix(version, "3.") {
		return nil, fmt.Errorf("unsupported OpenAPI version: %s (only 3.x supported)", version)
	}

	parsed, err := model.NewDocument(data)
	if err != nil {
		return nil, err
	}
	if err := parsed.CheckReferences(); err != nil {
		return nil, err
	}

	result := &Result{
		Version: version,
		RawData: data,
	}

	v3doc, err := doc.BuildV3Model()
	if v3doc == nil {
		if err == nil {
			err = fmt.Errorf("no model produced")
		}
		return nil, fmt.Errorf("building OpenAPI model: %w", err)
	}
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("building OpenAPI model: %v", err))
	}
	result.Warnings = append(result.Warnings, validate(doc)...)

	parsed.OpenAPI = version
	transform(&v3doc.Model, parsed)
	result.Document = parsed
	return result, nil
}

// validate checks doc against the OpenAPI schema and returns the findings.
func validate(doc libopenapi.Document) []string {
	v, errs := validator.NewValidator(doc)
	if len(errs) > 0 {
		warnings := make([]string, 0, len(errs))
		for _, err := range errs {
			warnings = append(warnings, fmt.Sprintf("creating validator: %v", err))
		}
		return warnings
	}

	valid, findings := v.ValidateDocument()
	if valid {
		return nil
	}
	warnings := make([]string, 0, len(findings))
	for _, f := range findings {
		msg := f.Message
		if f.Reason != "" {
			msg += ": " + f.Reason
		}
		warnings = append(warnings, msg)
	}
	return warnings
}
