package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
)

var auditLimit int

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "List recent review audit records",
	Long: `Prints the most recent review audit records, newest first. Records
identify documents only by content hash; no document text is stored.`,
	Args: cobra.NoArgs,
	RunE: runAudit,
}

func init() {
	auditCmd.Flags().IntVarP(&auditLimit, "limit", "n", 20, "maximum number of records")
	rootCmd.AddCommand(auditCmd)
}

func runAudit(cmd *cobra.Command, _ []string) error {
	if auditStore == nil {
		return errors.New("audit store not configured")
	}

	records, err := auditStore.List(context.Background(), auditLimit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		cmd.Println("No audit records.")
		return nil
	}

	for _, r := range records {
		cmd.Printf("%s  %s  %s@%s  %.12s\n",
			r.CreatedAt.Format("2006-01-02 15:04:05"), r.Kind, r.ChecklistID, r.Version, r.DocSHA256)
	}
	return nil
}
