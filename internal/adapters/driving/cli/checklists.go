package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var checklistShowVersion string

var checklistsCmd = &cobra.Command{
	Use:   "checklists",
	Short: "Inspect registered clause checklists",
}

var checklistsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered checklists and their versions",
	Args:  cobra.NoArgs,
	RunE:  runChecklistsList,
}

var checklistsShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Print one checklist definition as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runChecklistsShow,
}

func init() {
	checklistsShowCmd.Flags().StringVar(&checklistShowVersion, "checklist-version", "", "checklist version (default: current)")
	checklistsCmd.AddCommand(checklistsListCmd)
	checklistsCmd.AddCommand(checklistsShowCmd)
	rootCmd.AddCommand(checklistsCmd)
}

func runChecklistsList(cmd *cobra.Command, _ []string) error {
	if checklistRegistry == nil {
		return errors.New("checklist registry not configured")
	}

	ids := checklistRegistry.List()
	if len(ids) == 0 {
		cmd.Println("No checklists registered.")
		return nil
	}

	for _, id := range ids {
		versions, err := checklistRegistry.Versions(id)
		if err != nil {
			return err
		}
		current, err := checklistRegistry.Get(id, "")
		if err != nil {
			return err
		}
		cmd.Printf("%s\n", id)
		for _, v := range versions {
			marker := " "
			if v == current.Version {
				marker = "*"
			}
			cmd.Printf("  %s %s\n", marker, v)
		}
	}
	return nil
}

func runChecklistsShow(cmd *cobra.Command, args []string) error {
	if checklistRegistry == nil {
		return errors.New("checklist registry not configured")
	}

	checklist, err := checklistRegistry.Get(args[0], checklistShowVersion)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(checklist, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal checklist: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
