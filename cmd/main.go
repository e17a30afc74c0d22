package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"mediaccess/cmd/bootstrap"
	"mediaccess/internal/converter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mediaccess",
	Short: "MediAccess role-based dashboard backend",
}

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the MediAccess API server",
	Long: `Starts the MediAccess API server. Usage:

	mediaccess serve
`,
	Run: func(cmd *cobra.Command, args []string) {
		// Initialize application with all dependencies
		app, err := bootstrap.New(context.Background())
		if err != nil {
			logrus.Fatalf("Failed to initialize application: %v", err)
		}

		// Run the application
		app.Run()
	},
}

// rolesCmd prints which capabilities each role holds
var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "Prints the role permission table",
	RunE: func(cmd *cobra.Command, args []string) error {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ROLE\tLABEL\tCAPABILITIES")
		for _, row := range converter.RolePermissionsTable() {
			caps := make([]string, 0, len(row.Capabilities))
			for _, c := range row.Capabilities {
				caps = append(caps, string(c))
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", row.Role, row.Label, strings.Join(caps, ", "))
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, rolesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
