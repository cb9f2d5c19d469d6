package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const petstore = `openapi: 3.0.3
info:
  title: Petstore
  version: "1.0"
paths:
  /pets:
    get:
      operationId: listPets
      tags: [pets]
      security:
        - apiKey: []
      responses:
        '200':
          description: ok
          content:
            application/json:
              schema:
                type: array
                items:
                  $ref: '#/components/schemas/Pet'
components:
  securitySchemes:
    apiKey:
      type: apiKey
      name: X-Api-Key
      in: header
  schemas:
    Pet:
      type: object
      properties:
        name:
          type: string
    Unused:
      type: string
`

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := RootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func writeInput(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "openapi.yaml")
	require.NoError(t, os.WriteFile(path, []byte(petstore), 0o644))
	return path
}

func TestGenerateWritesFiles(t *testing.T) {
	input := writeInput(t)
	output := filepath.Join(t.TempDir(), "api")

	_, stderr, err := run(t, "generate", "-i", input, "-o", output)
	require.NoError(t, err)
	require.Contains(t, stderr, "Loaded OpenAPI 3.0.3: Petstore v1.0")
	require.Contains(t, stderr, "Types: 1 (1 pruned)")

	require.FileExists(t, filepath.Join(output, "models", "pet.ts"))
	require.FileExists(t, filepath.Join(output, "services", "pets-service.ts"))
	require.NoFileExists(t, filepath.Join(output, "models", "unused.ts"))

	_, stderr, err = run(t, "generate", "-i", input, "-o", output)
	require.NoError(t, err)
	require.Contains(t, stderr, "Unchanged: 7 files")
	require.NotContains(t, stderr, "Written:")
}

func TestGenerateDryRun(t *testing.T) {
	output := filepath.Join(t.TempDir(), "api")

	stdout, _, err := run(t, "generate", "-i", writeInput(t), "-o", output, "--dry-run")
	require.NoError(t, err)
	require.Contains(t, stdout, "// models/pet.ts\n")
	require.Contains(t, stdout, "export interface Pet {")
	require.NoDirExists(t, output)
}

func TestGenerateWatchNeedsLocalInput(t *testing.T) {
	_, _, err := run(t, "generate", "-i", "https://example.com/openapi.yaml", "--watch")
	require.ErrorContains(t, err, "--watch needs a local input file")
}

func TestGenerateRequiresInput(t *testing.T) {
	t.Chdir(t.TempDir())
	_, _, err := run(t, "generate")
	require.ErrorContains(t, err, "input is required")
}

func TestDump(t *testing.T) {
	stdout, _, err := run(t, "dump", "-i", writeInput(t), "--prune-unused-types=false")
	require.NoError(t, err)
	require.Contains(t, stdout, "title: Petstore")
	require.Contains(t, stdout, "name: Pet\n")
	require.Contains(t, stdout, "name: Unused\n")
	require.Contains(t, stdout, "id: listPets")
	require.Contains(t, stdout, "type: apiKey")
	require.Contains(t, stdout, "in: header")
	require.NotContains(t, stdout, " Type:")
	require.NotContains(t, stdout, " BearerFormat:")
}

func TestWatchFile(t *testing.T) {
	path := writeInput(t)
	ctx, cancel := context.WithCancel(context.Background())

	changed := make(chan struct{}, 1)
	done := make(chan error, 1)
	go func() {
		done <- watchFile(ctx, path, newLoggerTo(&bytes.Buffer{}, true), func() {
			select {
			case changed <- struct{}{}:
			default:
			}
		})
	}()

	require.Eventually(t, func() bool {
		require.NoError(t, os.WriteFile(path, []byte(petstore+"\n"), 0o644))
		select {
		case <-changed:
			return true
		case <-time.After(2 * watchDebounce):
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}
