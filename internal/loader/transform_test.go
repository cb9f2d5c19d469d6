package loader

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/remkoboschker/ng-openapi-gen/internal/model"
)

const shop = `openapi: 3.0.3
info:
  title: Shop
  version: "2.0"
tags:
  - name: orders
    description: Order handling
security:
  - apiKey: []
  - {}
paths:
  /orders/{id}:
    parameters:
      - $ref: '#/components/parameters/OrderId'
    get:
      operationId: getOrder
      tags: [orders]
      responses:
        default:
          description: failure
        '200':
          description: ok
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Order'
    delete:
      operationId: deleteOrder
      security: []
      requestBody:
        $ref: '#/components/requestBodies/Reason'
      responses:
        '204':
          description: gone
    put:
      operationId: putOrder
      security:
        - oauth: [write]
      responses:
        '200':
          $ref: '#/components/responses/Done'
components:
  securitySchemes:
    apiKey:
      type: apiKey
      name: X-Api-Key
      in: header
    oauth:
      type: oauth2
      flows:
        implicit:
          authorizationUrl: https://example.com/auth
          scopes:
            write: write access
  parameters:
    OrderId:
      name: id
      in: path
      required: true
      schema:
        type: integer
  requestBodies:
    Reason:
      required: true
      content:
        text/plain:
          schema:
            type: string
  responses:
    Done:
      description: done
  schemas:
    Order:
      type: object
      required: [id]
      properties:
        id:
          type: integer
        status:
          $ref: '#/components/schemas/Status'
        lines:
          type: array
          items:
            $ref: '#/components/schemas/Line'
        extra:
          type: object
          additionalProperties: true
        labels:
          type: object
          additionalProperties:
            type: string
    Status:
      type: string
      enum: [open, closed]
    Priority:
      type: integer
      enum: [1, 2]
    Line:
      allOf:
        - $ref: '#/components/schemas/Base'
        - type: object
          properties:
            qty:
              type: number
              nullable: true
    Base:
      type: object
    Alias:
      $ref: '#/components/schemas/Base'
`

func TestParseTransformsDocument(t *testing.T) {
	result, err := Parse([]byte(shop))
	require.NoError(t, err)
	doc := result.Document

	require.Equal(t, "3.0.3", doc.OpenAPI)
	require.Equal(t, "Shop", doc.Info.Title)
	require.Equal(t, "Order handling", doc.Tag("orders").Description)
	require.Equal(t, []string{"Order", "Status", "Priority", "Line", "Base", "Alias"}, doc.Components.Schemas.Names())

	order, _ := doc.Components.Schemas.Get("Order")
	require.Equal(t, []string{"id", "status", "lines", "extra", "labels"}, order.Properties.Names())
	require.True(t, order.IsRequired("id"))

	status, _ := order.Properties.Get("status")
	require.Equal(t, "#/components/schemas/Status", status.Ref)
	lines, _ := order.Properties.Get("lines")
	require.Equal(t, model.TypeArray, lines.PrimaryType())
	require.Equal(t, "#/components/schemas/Line", lines.Items.Ref)

	extra, _ := order.Properties.Get("extra")
	require.True(t, extra.AdditionalProperties.Allowed)
	require.Nil(t, extra.AdditionalProperties.ValueSchema())
	labels, _ := order.Properties.Get("labels")
	require.Equal(t, model.TypeString, labels.AdditionalProperties.ValueSchema().PrimaryType())

	statusSchema, _ := doc.Components.Schemas.Get("Status")
	require.Equal(t, []any{"open", "closed"}, statusSchema.Enum)
	priority, _ := doc.Components.Schemas.Get("Priority")
	require.Len(t, priority.Enum, 2)
	require.NotEqual(t, "1", priority.Enum[0], "numeric enum values keep their type")

	line, _ := doc.Components.Schemas.Get("Line")
	require.Len(t, line.AllOf, 2)
	require.Equal(t, "#/components/schemas/Base", line.AllOf[0].Ref)
	qty, _ := line.AllOf[1].Properties.Get("qty")
	require.True(t, qty.IsNullable())

	alias, _ := doc.Components.Schemas.Get("Alias")
	require.Equal(t, &model.Schema{Ref: "#/components/schemas/Base"}, alias)
}

func TestParseTransformsOperations(t *testing.T) {
	result, err := Parse([]byte(shop))
	require.NoError(t, err)
	doc := result.Document

	require.Len(t, doc.Security, 2)
	require.Equal(t, []string{"apiKey"}, doc.Security[0].Names())
	require.Empty(t, doc.Security[1], "an empty requirement allows anonymous access")

	scheme, ok := doc.Components.SecuritySchemes.Get("apiKey")
	require.True(t, ok)
	require.Equal(t, model.SecurityTypeAPIKey, scheme.Type)
	require.Equal(t, "X-Api-Key", scheme.Name)
	require.Equal(t, "header", scheme.In)

	item, ok := doc.Paths.Get("/orders/{id}")
	require.True(t, ok)
	require.Len(t, item.Parameters, 1)
	require.Equal(t, "id", item.Parameters[0].Name, "shared parameters arrive resolved")
	require.Equal(t, model.LocationPath, item.Parameters[0].In)
	require.True(t, item.Parameters[0].Required)

	get := item.Operation("get")
	require.Equal(t, []string{"200", "default"}, get.Responses.Names())
	require.Nil(t, get.Security, "no security key inherits the document")

	del := item.Operation("delete")
	require.NotNil(t, del.Security)
	require.Empty(t, *del.Security)
	require.True(t, del.RequestBody.Required)
	require.Equal(t, []string{"text/plain"}, del.RequestBody.Content.Names())

	put := item.Operation("put")
	require.Len(t, *put.Security, 1)
	scopes, _ := (*put.Security)[0].Get("oauth")
	require.Equal(t, []string{"write"}, scopes)
	done, _ := put.Responses.Get("200")
	require.Equal(t, "done", done.Description)
}

func TestParseRejectsBrokenReferences(t *testing.T) {
	doc := `openapi: 3.0.3
info: {title: t, version: "1"}
paths:
  /pets:
    get:
      operationId: listPets
      responses:
        '200':
          description: ok
          content:
            application/json:
              schema: {$ref: '#/components/schemas/Pet'}
`
	_, err := Parse([]byte(doc))
	require.ErrorIs(t, err, model.ErrBrokenReference)

	var broken *model.BrokenReferenceError
	require.True(t, errors.As(err, &broken))
	require.Equal(t, "#/components/schemas/Pet", broken.Ref)
	require.Equal(t, "#/paths/~1pets/get/responses/200/content/application~1json/schema", broken.Location)
}
