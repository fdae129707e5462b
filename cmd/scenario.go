package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/salesdojo/salesdojo/internal/catalog"
	"github.com/salesdojo/salesdojo/internal/output"
)

var scenarioCmd = &cobra.Command{
	Use:   "scenario",
	Short: "Manage practice scenarios",
	Long:  "List, inspect, and import practice scenarios.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return scenarioListRun()
	},
}

var scenarioListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List scenarios",
	RunE: func(cmd *cobra.Command, args []string) error {
		return scenarioListRun()
	},
}

var scenarioShowCmd = &cobra.Command{
	Use:   "show <scenario-id>",
	Short: "Show scenario details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return scenarioShowRun(args[0])
	},
}

var scenarioImportCmd = &cobra.Command{
	Use:   "import <file.yaml>",
	Short: "Import scenarios from a YAML file",
	Long: `Import scenario definitions from a YAML file into the catalog.
Existing scenarios with the same id are replaced; sessions already started
keep the snapshot they were created with.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return scenarioImportRun(args[0])
	},
}

func init() {
	scenarioCmd.AddCommand(scenarioListCmd)
	scenarioCmd.AddCommand(scenarioShowCmd)
	scenarioCmd.AddCommand(scenarioImportCmd)
	rootCmd.AddCommand(scenarioCmd)
}

func scenarioListRun() error {
	cat, err := getCatalog()
	if err != nil {
		return err
	}

	scenarios, err := cat.List(context.Background())
	if err != nil {
		return err
	}

	table := ui.Table([]string{"ID", "Title", "Prospect", "Mood", "Difficulty"})
	for _, sc := range scenarios {
		table.Append([]string{
			sc.ID,
			sc.Title,
			fmt.Sprintf("%s (%s)", sc.ProspectName, sc.ProspectRole),
			output.MoodColor(string(sc.InitialMood)),
			output.DifficultyColor(string(sc.Difficulty)),
		})
	}
	table.Render()
	return nil
}

func scenarioShowRun(id string) error {
	cat, err := getCatalog()
	if err != nil {
		return err
	}

	sc, err := cat.Get(context.Background(), id)
	if errors.Is(err, catalog.ErrNotFound) {
		return fmt.Errorf("scenario not found: %s", id)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(ui.Out, "%s  [%s]\n\n", output.Cyan(sc.Title), output.DifficultyColor(string(sc.Difficulty)))
	fmt.Fprintf(ui.Out, "%s\n\n", sc.Description)
	fmt.Fprintf(ui.Out, "Prospect:  %s, %s\n", sc.ProspectName, sc.ProspectRole)
	fmt.Fprintf(ui.Out, "Company:   %s (%s, %s)\n", sc.Company, sc.Industry, sc.CompanySize)
	fmt.Fprintf(ui.Out, "Mood:      %s\n\n", output.MoodColor(string(sc.InitialMood)))
	fmt.Fprintf(ui.Out, "Background:\n  %s\n\n", sc.Background)
	fmt.Fprintln(ui.Out, "Pain points:")
	for _, p := range sc.PainPoints {
		fmt.Fprintf(ui.Out, "  - %s\n", p)
	}
	return nil
}

func scenarioImportRun(path string) error {
	cat, err := getCatalog()
	if err != nil {
		return err
	}

	scenarios, err := catalog.LoadFile(path)
	if err != nil {
		return err
	}

	ctx := context.Background()
	var imported []string
	for _, sc := range scenarios {
		if err := cat.Put(ctx, sc); err != nil {
			return fmt.Errorf("import scenario %s: %w", sc.ID, err)
		}
		imported = append(imported, sc.ID)
	}

	ui.Success("Imported %d scenario(s): %s", len(imported), strings.Join(imported, ", "))
	return nil
}
