package descriptor

import (
	"github.com/remkoboschker/ng-openapi-gen/internal/model"
)

// ServiceDescriptor groups the operations of one tag.
type ServiceDescriptor struct {
	Tag          string                 `json:"tag"`
	Name         string                 `json:"name"`
	FileName     string                 `json:"fileName"`
	Description  string                 `json:"description,omitempty"`
	Operations   []*OperationDescriptor `json:"operations"`
	Dependencies DependencyRecord       `json:"dependencies"`
}

// buildService collects the dependencies of every operation of a tag.
// Types used only by responses other than the success response are recorded
// as additional rather than imported.
func (c *Context) buildService(tag model.Tag, ops []*OperationDescriptor) (*ServiceDescriptor, error) {
	name := c.serviceClass(tag.Name)
	svc := &ServiceDescriptor{
		Tag:         tag.Name,
		Name:        name,
		FileName:    fileName(name),
		Description: tag.Description,
		Operations:  ops,
	}

	deps := c.newDependencies(name)
	for _, op := range ops {
		location := op.Location()
		for _, p := range op.Parameters {
			if err := deps.collect(p.Schema, false, location); err != nil {
				return nil, err
			}
		}
		if op.RequestBody != nil {
			for _, content := range op.RequestBody.Content {
				if err := deps.collect(content.Schema, false, location); err != nil {
					return nil, err
				}
			}
		}
		for i := range op.Responses {
			additional := &op.Responses[i] != op.SuccessResponse
			for _, content := range op.Responses[i].Content {
				if err := deps.collect(content.Schema, additional, location); err != nil {
					return nil, err
				}
			}
		}
	}
	svc.Dependencies = deps.record()
	return svc, nil
}
