package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackview/pkg/errors"
	"github.com/matzehuels/stackview/pkg/stackfile"
)

// initCommand creates the init command writing a starter document.
func (c *CLI) initCommand() *cobra.Command {
	var id string
	var force bool

	cmd := &cobra.Command{
		Use:   "init [file]",
		Short: "Write a starter stack document",
		Long: `Write a starter stack document. The format follows the extension:
.toml (default), .yaml/.yml or .json.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "stack.toml"
			if len(args) == 1 {
				path = args[0]
			}
			if id == "" {
				id = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			}
			return runInit(path, id, force)
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "container identifier (default: file name)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	return cmd
}

func runInit(path, id string, force bool) error {
	if err := errors.ValidateDocumentPath(path); err != nil {
		return err
	}
	if err := errors.ValidateElementID(id); err != nil {
		return fmt.Errorf("container id: %w", err)
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	format, err := stackfile.FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := stackfile.Marshal(stackfile.Template(id), format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}

	printSuccess("Created %s", path)
	printNextStep("Inspect constraints", "stackview synth "+path)
	printNextStep("Replay its steps", "stackview simulate "+path)
	return nil
}
