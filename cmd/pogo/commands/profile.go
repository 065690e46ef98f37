package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func profileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Open a session and print the player profile",
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

			p, err := s.GetProfile(ctx)
			if err != nil {
				return err
			}
			created := time.UnixMilli(int64(p.CreationTimestampMs)).UTC()
			fmt.Printf("Username: %s\nTeam: %d\nCreated: %s\nStorage: %d pokemon, %d items\n",
				p.Username, p.Team, created.Format(time.RFC3339), p.MaxPokemonStorage, p.MaxItemStorage)
			fmt.Println(s)
			return nil
		},
	}
}
