package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

const petstore = `
openapi: 3.0.3
info:
  title: Petstore
  version: "1.0"
paths:
  /pets/{id}:
    parameters:
      - $ref: '#/components/parameters/PetId'
    get:
      operationId: getPet
      security: []
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Pet'
    delete:
      responses:
        "204":
          description: gone
components:
  parameters:
    PetId:
      name: id
      in: path
      required: true
      schema:
        type: string
  schemas:
    Pet:
      type: object
      example:
        $ref: not a reference
      properties:
        tag:
          type: string
    a/b:
      type: string
`

func mustDocument(t *testing.T, data string) *Document {
	t.Helper()
	doc, err := NewDocument([]byte(data))
	require.NoError(t, err)
	return doc
}

func TestNewDocumentRejectsNonMapping(t *testing.T) {
	_, err := NewDocument([]byte("- a\n- b\n"))
	require.Error(t, err)
}

func TestLookup(t *testing.T) {
	doc := mustDocument(t, petstore)

	tests := []struct {
		name    string
		ref     string
		wantErr bool
	}{
		{name: "full schema path", ref: "#/components/schemas/Pet"},
		{name: "bare schema name", ref: "Pet"},
		{name: "parameter", ref: "#/components/parameters/PetId"},
		{name: "escaped segment", ref: "#/components/schemas/a~1b"},
		{name: "operation", ref: OperationRef("/pets/{id}", "GET")},
		{name: "missing schema", ref: "#/components/schemas/Missing", wantErr: true},
		{name: "missing bare name", ref: "Missing", wantErr: true},
		{name: "scalar target", ref: "#/openapi", wantErr: true},
		{name: "through scalar", ref: "#/openapi/x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := doc.Lookup(tt.ref)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrBrokenReference)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, node)
		})
	}
}

func TestDeclares(t *testing.T) {
	doc := mustDocument(t, petstore)
	require.True(t, doc.Declares(OperationRef("/pets/{id}", "get"), "security"))
	require.False(t, doc.Declares(OperationRef("/pets/{id}", "delete"), "security"))
	require.False(t, doc.Declares(OperationRef("/nope", "get"), "security"))
}

func TestSchemaRefNames(t *testing.T) {
	require.Equal(t, "#/components/schemas/a~1b", SchemaRef("a/b"))

	name, ok := SchemaName(SchemaRef("a/b"))
	require.True(t, ok)
	require.Equal(t, "a/b", name)

	_, ok = SchemaName("#/components/parameters/PetId")
	require.False(t, ok)
	_, ok = SchemaName("#/components/schemas/Pet/properties/tag")
	require.False(t, ok)
}

func TestCheckReferences(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		ref      string
		location string
	}{
		{name: "all resolve", doc: petstore},
		{
			name: "schema property",
			doc: `
openapi: 3.0.3
paths: {}
components:
  schemas:
    Pet:
      type: object
      properties:
        owner: {$ref: '#/components/schemas/Missing'}
`,
			ref:      "#/components/schemas/Missing",
			location: "#/components/schemas/Pet/properties/owner",
		},
		{
			name: "parameter",
			doc: `
openapi: 3.0.3
paths:
  /pets:
    get:
      parameters:
        - $ref: '#/components/parameters/Limit'
`,
			ref:      "#/components/parameters/Limit",
			location: "#/paths/~1pets/get/parameters/0",
		},
		{
			name: "external references are left to the loader",
			doc: `
openapi: 3.0.3
paths: {}
components:
  schemas:
    Pet: {$ref: 'pet.yaml#/Pet'}
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mustDocument(t, tt.doc).CheckReferences()
			if tt.ref == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrBrokenReference)
			var broken *BrokenReferenceError
			require.True(t, errors.As(err, &broken))
			require.Equal(t, tt.ref, broken.Ref)
			require.Equal(t, tt.location, broken.Location)
		})
	}
}

func TestOrderedSet(t *testing.T) {
	var o Ordered[int]
	o.Set("b", 1)
	o.Set("a", 2)
	o.Set("b", 3)
	require.Equal(t, []string{"b", "a"}, o.Names())
	v, ok := o.Get("b")
	require.True(t, ok)
	require.Equal(t, 3, v)
}

func TestSchemaHelpers(t *testing.T) {
	s := &Schema{Type: TypeSet{TypeString, TypeNull}, Required: []string{"name"}}
	require.Equal(t, TypeString, s.PrimaryType())
	require.True(t, s.IsNullable())
	require.True(t, s.IsRequired("name"))
	require.False(t, s.IsRequired("tag"))

	require.Equal(t, TypeNull, (&Schema{Type: TypeSet{TypeNull}}).PrimaryType())
	require.Equal(t, SchemaType(""), (&Schema{}).PrimaryType())
	require.True(t, (&Schema{Nullable: true}).IsNullable())

	var ap *AdditionalProperties
	require.Nil(t, ap.ValueSchema())
}

func TestTag(t *testing.T) {
	doc := &Document{Tags: []Tag{{Name: "pets", Description: "Everything about pets"}}}
	require.Equal(t, "Everything about pets", doc.Tag("pets").Description)
	require.Equal(t, Tag{Name: "other"}, doc.Tag("other"))
}
