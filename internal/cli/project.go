package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tonal/internal/security"
	"github.com/jmylchreest/tonal/internal/store"
)

var (
	projectExportOutput string
	projectImportName   string
)

var projectCmd = &cobra.Command{
	Use:     "project",
	Aliases: []string{"projects"},
	Short:   "Save, load and share named projects",
	Long: `Save the current scale, locks, typography and contrast pair under a name,
restore it later, or move it between machines as a JSON file.

Examples:
  tonal project save marketing
  tonal project list
  tonal project load marketing
  tonal project export marketing -o marketing.json
  tonal project import marketing.json --name campaign`,
}

var projectSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save the current state as a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(projectConfig)
		if err != nil {
			return err
		}
		if !sess.store.SaveProject(args[0]) {
			return fmt.Errorf("project name must not be blank")
		}
		if err := sess.save(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved project %q\n", args[0])
		return nil
	},
}

var projectLoadCmd = &cobra.Command{
	Use:   "load <name>",
	Short: "Replace the current state with a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(projectConfig)
		if err != nil {
			return err
		}
		if err := sess.store.LoadProject(args[0]); err != nil {
			return err
		}
		if err := sess.save(); err != nil {
			return err
		}
		return printScale(cmd.OutOrStdout(), sess.store, false)
	},
}

var projectListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List saved projects",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		sess, err := openSession(projectConfig)
		if err != nil {
			return err
		}
		renderProjects(cmd.OutOrStdout(), sess.store)
		return nil
	},
}

var projectRemoveCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"rm"},
	Short:   "Delete a saved project",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(projectConfig)
		if err != nil {
			return err
		}
		if err := sess.store.RemoveProject(args[0]); err != nil {
			return err
		}
		if err := sess.save(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed project %q\n", args[0])
		return nil
	},
}

var projectExportCmd = &cobra.Command{
	Use:   "export [name]",
	Short: "Write a project as JSON",
	Long: `Write a saved project, or the current state when no name is given, as a JSON
envelope that "tonal project import" reads back.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(projectConfig)
		if err != nil {
			return err
		}

		var env store.ExportEnvelope
		if len(args) == 1 {
			if env, err = sess.store.ExportProject(args[0]); err != nil {
				return err
			}
		} else {
			env = sess.store.ExportCurrent("current")
		}

		data, err := json.MarshalIndent(env, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode project: %w", err)
		}
		data = append(data, '\n')

		if projectExportOutput == "" || projectExportOutput == "-" {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		if err := os.WriteFile(projectExportOutput, data, 0o644); err != nil {
			return fmt.Errorf("failed to write project: %w", err)
		}
		logger.Info("exported project", "name", env.Name, "path", projectExportOutput)
		return nil
	},
}

var projectImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a project from JSON and make it current",
	Long: `Import a project exported with "tonal project export", or a bare project
snapshot. The project is saved under its exported name, --name, or the file
name, and becomes the current state. Use "-" to read standard input.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(projectConfig)
		if err != nil {
			return err
		}

		name, err := importProject(sess.store, cmd.InOrStdin(), args[0], projectImportName)
		if err != nil {
			return err
		}
		if err := sess.save(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported project %q\n", name)
		return nil
	},
}

func init() {
	projectExportCmd.Flags().StringVarP(&projectExportOutput, "output", "o", "", "write to a file instead of standard output")
	projectImportCmd.Flags().StringVar(&projectImportName, "name", "", "save under this name")

	projectCmd.AddCommand(projectSaveCmd)
	projectCmd.AddCommand(projectLoadCmd)
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectRemoveCmd)
	projectCmd.AddCommand(projectExportCmd)
	projectCmd.AddCommand(projectImportCmd)
	rootCmd.AddCommand(projectCmd)
}

// importProject reads an exported project from path ("-" for stdin) and
// makes it current. An explicit name wins over the exported one.
func importProject(st *store.Store, stdin io.Reader, path, name string) (string, error) {
	r := stdin
	fallback := "imported"
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return "", fmt.Errorf("failed to open project file: %w", err)
		}
		defer f.Close()
		r = f
		fallback = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	data, err := security.ReadAllLimited(r, security.MaxImportSize)
	if err != nil {
		return "", fmt.Errorf("failed to read project: %w", err)
	}

	exported, snap, err := store.ParseImport(data, fallback)
	if err != nil {
		return "", err
	}
	if name == "" {
		name = exported
	}
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("project name must not be blank")
	}
	st.ImportProject(snap, name)
	return name, nil
}

func renderProjects(w io.Writer, st *store.Store) {
	names := st.Projects()
	if len(names) == 0 {
		fmt.Fprintln(w, "No saved projects")
		return
	}

	table := NewTable([]string{"Name", "Seed", "Template", "Locks", "Updated"})
	table.AlignRight(3)
	for _, name := range names {
		snap, _ := st.Project(name)
		locks := 0
		for _, locked := range snap.Locks {
			if locked {
				locks++
			}
		}
		table.AddRow([]string{
			name,
			snap.ColorSeed,
			snap.TemplateID,
			fmt.Sprint(locks),
			snap.UpdatedAt.Local().Format(time.DateTime),
		})
	}
	fmt.Fprint(w, table.Render())
}
