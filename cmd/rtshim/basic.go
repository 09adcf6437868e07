package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/charlie0129/rtshim/pkg/version"
)

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("%s %s\n", version.Version, version.GitCommit)
		},
	}
}

func NewPackageCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "package",
		Short:   "Show the package identity reported by the daemon",
		GroupID: gBasic,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info, err := newClient().GetPackage()
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}

			cmd.Println(bold("Package identity:"))
			cmd.Printf("  Name: %s\n", orNA(info.Name, info.Name != ""))
			cmd.Printf("  Full name: %s\n", orNA(info.FullName, info.FullName != ""))
			cmd.Printf("  Publisher: %s\n", orNA(info.Publisher, info.Publisher != ""))
			cmd.Printf("  Product ID: %s\n", orNA(info.ProductID, info.ProductID != ""))
			if info.Version != nil {
				cmd.Printf("  Version: %s\n", bold("%s", info.Version))
			} else {
				cmd.Printf("  Version: %s\n", orNA("", false))
			}
			if info.Architecture != nil {
				cmd.Printf("  Architecture: %s\n", bold("%s", info.Architecture))
			} else {
				cmd.Printf("  Architecture: %s\n", orNA("", false))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")

	return cmd
}

func NewStringCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "string NAME",
		Short:   "Print a localized string from the daemon's resources",
		GroupID: gBasic,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newClient().GetString(args[0])
			if err != nil {
				return fmt.Errorf("failed to get string %s: %w", args[0], err)
			}
			cmd.Println(s)
			return nil
		},
	}
}
