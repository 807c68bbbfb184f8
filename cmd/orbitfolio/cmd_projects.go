package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"orbitfolio/internal/catalog"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// projectsCmd manages the catalog database
var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Manage the project catalog",
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog records in display order",
	RunE:  runProjectsList,
}

var projectsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add or replace a catalog record",
	Long: `Adds a record to the catalog. An existing id is replaced in place.

Example:
  orbitfolio projects add --id atlas --title "Atlas" --status deployed --tech go,sqlite`,
	RunE: runProjectsAdd,
}

var projectsRemoveCmd = &cobra.Command{
	Use:   "remove [id]",
	Short: "Remove a catalog record",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectsRemove,
}

var projectsImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import records from a YAML catalog file",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectsImport,
}

var projectsExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export the catalog to a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectsExport,
}

// Add flags
var (
	addID             string
	addCodename       string
	addTitle          string
	addStatus         string
	addClassification string
	addSummary        string
	addDescription    string
	addTech           []string
)

func init() {
	projectsAddCmd.Flags().StringVar(&addID, "id", "", "Record id (default: generated)")
	projectsAddCmd.Flags().StringVar(&addCodename, "codename", "", "Short label shown next to the node")
	projectsAddCmd.Flags().StringVar(&addTitle, "title", "", "Project title (required)")
	projectsAddCmd.Flags().StringVar(&addStatus, "status", string(catalog.StatusInProgress), "DEPLOYED, IN_PROGRESS or ARCHIVED")
	projectsAddCmd.Flags().StringVar(&addClassification, "classification", "", "Project classification")
	projectsAddCmd.Flags().StringVar(&addSummary, "summary", "", "One-line summary")
	projectsAddCmd.Flags().StringVar(&addDescription, "description", "", "Markdown description")
	projectsAddCmd.Flags().StringSliceVar(&addTech, "tech", nil, "Technologies, comma separated")
	projectsAddCmd.MarkFlagRequired("title")

	projectsCmd.AddCommand(projectsListCmd)
	projectsCmd.AddCommand(projectsAddCmd)
	projectsCmd.AddCommand(projectsRemoveCmd)
	projectsCmd.AddCommand(projectsImportCmd)
	projectsCmd.AddCommand(projectsExportCmd)
}

// openStore opens the workspace catalog database.
func openStore() (*catalog.SQLiteStore, error) {
	ws := resolveWorkspace()
	cfg, err := loadConfig(ws)
	if err != nil {
		return nil, err
	}
	store, err := catalog.OpenSQLiteStore(resolvePath(ws, cfg.Catalog.DatabasePath))
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	return store, nil
}

func runProjectsList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.List(context.Background())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintln(out, "No projects. Add one with `orbitfolio projects add`.")
		return nil
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tLABEL\tSTATUS\tTITLE")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.ID, r.Label(), r.Status, r.Title)
	}
	return tw.Flush()
}

func runProjectsAdd(cmd *cobra.Command, args []string) error {
	status, err := catalog.ParseStatus(addStatus)
	if err != nil {
		return err
	}
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := store.Put(context.Background(), catalog.Record{
		ID:             strings.TrimSpace(addID),
		Codename:       addCodename,
		Title:          addTitle,
		Status:         status,
		Classification: addClassification,
		Summary:        addSummary,
		Description:    addDescription,
		Tech:           addTech,
	})
	if err != nil {
		return err
	}
	getLogger().Info("Stored project", zap.String("id", rec.ID))
	fmt.Fprintln(cmd.OutOrStdout(), rec.ID)
	return nil
}

func runProjectsRemove(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Delete(context.Background(), args[0]); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return fmt.Errorf("no project with id %q", args[0])
		}
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
	return nil
}

func runProjectsImport(cmd *cobra.Command, args []string) error {
	records, err := catalog.LoadFile(args[0])
	if err != nil {
		return err
	}
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	for _, r := range records {
		if _, err := store.Put(ctx, r); err != nil {
			return fmt.Errorf("import %s: %w", args[0], err)
		}
	}
	getLogger().Info("Imported catalog", zap.String("file", args[0]), zap.Int("records", len(records)))
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d projects\n", len(records))
	return nil
}

func runProjectsExport(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.List(context.Background())
	if err != nil {
		return err
	}
	if err := catalog.SaveFile(args[0], records); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d projects to %s\n", len(records), args[0])
	return nil
}
