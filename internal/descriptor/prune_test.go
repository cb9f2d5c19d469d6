package descriptor

import (
	"testing"

	"github.com/remkoboschker/ng-openapi-gen/internal/config"
	"github.com/stretchr/testify/require"
)

func typeNames(m *Model) []string {
	var names []string
	for _, td := range m.Types {
		names = append(names, td.Name)
	}
	return names
}

func TestPrune(t *testing.T) {
	m := buildDoc(t, petstore)

	removed := m.Prune()
	require.Equal(t, []string{"Status", "Code", "Id", "Anything", "Orphan", "OrphanChild"}, removed)
	require.Equal(t, []string{"Named", "Pet", "Owner", "Error"}, typeNames(m))
	require.NotContains(t, m.Services[0].Dependencies.Imports, Import{Type: "Error", File: "error"},
		"types reached only through error responses are kept but not imported")
}

func TestPruneFollowsCycles(t *testing.T) {
	doc := `
openapi: 3.0.3
info: {title: t, version: "1"}
paths:
  /nodes:
    get:
      operationId: listNodes
      tags: [nodes]
      responses:
        '200':
          description: ok
          content:
            application/json:
              schema:
                type: array
                items: {$ref: '#/components/schemas/Node'}
components:
  schemas:
    Node:
      type: object
      properties:
        children:
          type: array
          items: {$ref: '#/components/schemas/Edge'}
    Edge:
      type: object
      properties:
        target: {$ref: '#/components/schemas/Node'}
        meta:
          type: object
          additionalProperties: {$ref: '#/components/schemas/Meta'}
    Meta: {type: string}
    Unused:
      type: object
      properties:
        node: {$ref: '#/components/schemas/Node'}
`
	m := buildDoc(t, doc)
	require.Equal(t, []string{"Unused"}, m.Prune())
	require.Equal(t, []string{"Node", "Edge", "Meta"}, typeNames(m))
}

func TestPruneWithoutServicesRemovesEverything(t *testing.T) {
	m := buildDoc(t, petstore, func(c *config.Config) { c.IncludeTags = []string{"nothing"} })
	require.Empty(t, m.Services)
	require.Len(t, m.Prune(), 10)
	require.Empty(t, m.Types)
}
