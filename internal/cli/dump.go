package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/remkoboschker/ng-openapi-gen/internal/codegen"
	"github.com/remkoboschker/ng-openapi-gen/internal/config"
)

// DumpCommand prints the descriptor model templates would receive.
func DumpCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the descriptor model of an OpenAPI document as YAML",
		RunE:  runDump,
	}

	config.BindFlags(cmd)

	return cmd
}

func runDump(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd)
	if err != nil {
		return err
	}

	doc, err := load(cmd, cfg.Input)
	if err != nil {
		return err
	}

	gen, err := codegen.New(cfg, newLogger(cmd))
	if err != nil {
		return fmt.Errorf("creating generator: %w", err)
	}
	m, _, err := gen.Describe(doc)
	if err != nil {
		return err
	}

	out, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding model: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), string(out))
	return nil
}
