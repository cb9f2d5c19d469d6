package descriptor

import (
	"fmt"

	"github.com/remkoboschker/ng-openapi-gen/internal/model"
)

// WarningCode classifies a non-fatal finding.
type WarningCode string

const (
	WarnMissingOperationID           WarningCode = "missing-operation-id"
	WarnDuplicateOperationID         WarningCode = "duplicate-operation-id"
	WarnUnsupportedParameterLocation WarningCode = "unsupported-parameter-location"
	WarnExcludedParameter            WarningCode = "excluded-parameter"
	WarnNoTags                       WarningCode = "no-tags"
	WarnMalformedPathTemplate        WarningCode = "malformed-path-template"
	WarnDuplicateTypeName            WarningCode = "duplicate-type-name"
)

// Warning is a non-fatal finding collected while building descriptors.
type Warning struct {
	Code     WarningCode `json:"code"`
	Location string      `json:"location"`
	Message  string      `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Location, w.Message)
}

// BrokenReferenceError reports a $ref that does not resolve.
type BrokenReferenceError = model.BrokenReferenceError
