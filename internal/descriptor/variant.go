package descriptor

import (
	"strings"

	"github.com/remkoboschker/ng-openapi-gen/internal/naming"
)

// PayloadKind is how a body is carried over the wire.
type PayloadKind string

const (
	PayloadStructured PayloadKind = "json"
	PayloadText       PayloadKind = "text"
	PayloadBinary     PayloadKind = "blob"
)

// ResponseMethodSuffix is appended to a variant's method name to form the
// method that exposes the full HTTP response.
const ResponseMethodSuffix = "$Response"

// ClassifyMediaType maps a media type to its payload kind. Parameters such
// as charset are ignored.
func ClassifyMediaType(mediaType string) PayloadKind {
	mt, _, _ := strings.Cut(mediaType, ";")
	mt = strings.ToLower(strings.TrimSpace(mt))
	switch {
	case mt == "application/json",
		strings.HasPrefix(mt, "application/") && strings.HasSuffix(mt, "+json"):
		return PayloadStructured
	case strings.HasPrefix(mt, "text/"):
		return PayloadText
	}
	return PayloadBinary
}

// MethodVariant is one callable rendition of an operation for a specific
// pair of request and response media types.
type MethodVariant struct {
	MethodName         string      `json:"methodName"`
	ResponseMethodName string      `json:"responseMethodName"`
	RequestBody        *Content    `json:"requestBody,omitempty"`
	SuccessResponse    *Content    `json:"successResponse,omitempty"`
	ResultType         *TypeExpr   `json:"resultType"`
	ResponseType       PayloadKind `json:"responseType"`
	Accept             string      `json:"accept"`
}

// buildVariants expands the cross product of request body and success
// response media types. A side with more than one media type contributes a
// suffix to the method name.
func buildVariants(op *OperationDescriptor) []MethodVariant {
	var bodies, results []Content
	if op.RequestBody != nil {
		bodies = op.RequestBody.Content
	}
	if op.SuccessResponse != nil {
		results = op.SuccessResponse.Content
	}

	var variants []MethodVariant
	for _, body := range axis(bodies) {
		base := op.ID
		if len(bodies) > 1 {
			base += variantSuffix(body)
		}
		for _, result := range axis(results) {
			name := base
			if len(results) > 1 {
				name += variantSuffix(result)
			}
			variants = append(variants, newVariant(name, body, result))
		}
	}
	return variants
}

func axis(contents []Content) []*Content {
	if len(contents) == 0 {
		return []*Content{nil}
	}
	out := make([]*Content, len(contents))
	for i := range contents {
		out[i] = &contents[i]
	}
	return out
}

// variantSuffix derives "$" + the type name of the last media type segment,
// or "$Any" for wildcards and octet streams.
func variantSuffix(content *Content) string {
	if content == nil {
		return ""
	}
	mt := strings.Replace(content.MediaType, "/*", "", 1)
	if mt == "*" || mt == "application/octet-stream" {
		return "$Any"
	}
	return "$" + naming.TypeName(mt[strings.LastIndex(mt, "/")+1:])
}

func newVariant(name string, body, result *Content) MethodVariant {
	v := MethodVariant{
		MethodName:         name,
		ResponseMethodName: name + ResponseMethodSuffix,
		RequestBody:        body,
		SuccessResponse:    result,
	}
	if result == nil {
		v.ResultType = Void()
		v.ResponseType = PayloadText
		v.Accept = "*/*"
		return v
	}
	v.ResultType = result.Type
	v.ResponseType = result.Payload
	v.Accept = result.MediaType
	return v
}
