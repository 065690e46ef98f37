package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func loginCmd() *cobra.Command {
	var (
		provider   string
		token      string
		withSigner bool
	)
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store a provider access token securely",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			fp, err := wire.Identity.Login(passphrase, provider, token, withSigner)
			if err != nil {
				return err
			}
			fmt.Printf("Login stored.\nToken fingerprint: %s\n", fp)
			if withSigner {
				fmt.Println("A request signer key was generated.")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&provider, "provider", "google", "identity provider (google or ptc)")
	cmd.Flags().StringVar(&token, "token", "", "provider access token")
	cmd.Flags().BoolVar(&withSigner, "signer", true, "generate a request signer key")
	_ = cmd.MarkFlagRequired("token")
	return cmd
}
