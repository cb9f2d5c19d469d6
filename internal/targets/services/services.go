// Package services emits one Angular service per service descriptor, the
// services index and the support files the services import.
package services

import (
	"fmt"
	"path"

	"github.com/remkoboschker/ng-openapi-gen/internal/descriptor"
	"github.com/remkoboschker/ng-openapi-gen/internal/templates"
)

const (
	Dir       = "services"
	IndexFile = "services.ts"
)

// supportFiles maps each shared output file to its template.
var supportFiles = []struct {
	file     string
	template string
}{
	{"api-configuration.ts", "api-configuration"},
	{"base-service.ts", "base-service"},
	{"strict-http-response.ts", "strict-http-response"},
}

type Target struct{}

func New() *Target {
	return &Target{}
}

func (t *Target) Name() string {
	return "services"
}

type templateData struct {
	Info    descriptor.Info
	Service *descriptor.ServiceDescriptor
}

type indexData struct {
	Info     descriptor.Info
	Services []*descriptor.ServiceDescriptor
}

// Generate renders every service of m and hands each file to emit.
func (t *Target) Generate(engine templates.Engine, m *descriptor.Model, emit func(name, content string)) error {
	for _, svc := range m.Services {
		content, err := engine.Execute("service", templateData{Info: m.Info, Service: svc})
		if err != nil {
			return fmt.Errorf("rendering service %s: %w", svc.Name, err)
		}
		emit(path.Join(Dir, svc.FileName+".ts"), content)
	}

	data := indexData{Info: m.Info, Services: m.Services}
	content, err := engine.Execute("services-index", data)
	if err != nil {
		return fmt.Errorf("rendering services index: %w", err)
	}
	emit(IndexFile, content)

	for _, f := range supportFiles {
		content, err := engine.Execute(f.template, data)
		if err != nil {
			return fmt.Errorf("rendering %s: %w", f.file, err)
		}
		emit(f.file, content)
	}
	return nil
}
