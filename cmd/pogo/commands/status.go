package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the stored login and the last session summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			if passphrase != "" {
				fp, err := wire.Identity.Fingerprint(passphrase)
				if err != nil {
					return err
				}
				fmt.Printf("Token fingerprint: %s\n", fp)
			}

			snap, ok, err := wire.Snapshots.LoadSnapshot()
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("No session recorded yet.")
				return nil
			}
			fmt.Printf("Phase: %s\nEndpoint: %s\n", snap.Phase, snap.Endpoint)
			if snap.Username != "" {
				fmt.Printf("Username: %s\nInventory items: %d\n", snap.Username, snap.InventoryItems)
			}
			if snap.TicketExpiresMs > 0 {
				exp := time.UnixMilli(int64(snap.TicketExpiresMs))
				state := "valid"
				if time.Now().After(exp) {
					state = "expired"
				}
				fmt.Printf("Ticket: %s until %s\n", state, exp.UTC().Format(time.RFC3339))
			}
			fmt.Printf("Updated: %s\n", time.UnixMilli(snap.UpdatedUnixMillis).UTC().Format(time.RFC3339))
			return nil
		},
	}
}
