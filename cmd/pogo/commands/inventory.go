package commands

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func inventoryCmd() *cobra.Command {
	var deleted bool
	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Open a session and list the inventory",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()

			s, err := wire.OpenSession(ctx, passphrase)
			if err != nil {
				return err
			}
			defer wire.Record(s)

			// Inventory arrives with the default batch.
			if _, err := s.GetProfile(ctx); err != nil {
				return err
			}
			inv, err := s.Inventory()
			if err != nil {
				return err
			}
			fmt.Printf("%d items\n", inv.Len())
			for _, it := range inv.Items() {
				at := time.UnixMilli(int64(it.ModifiedTimestampMs)).UTC().Format(time.RFC3339)
				if len(it.DeletedItemKey) > 0 {
					if deleted {
						fmt.Printf("  %s  deleted %s\n", at, hex.EncodeToString(it.DeletedItemKey))
					}
					continue
				}
				fmt.Printf("  %s  %d bytes\n", at, len(it.Data))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&deleted, "deleted", false, "also list deleted item keys")
	return cmd
}
