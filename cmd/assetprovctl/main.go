// Command assetprovctl is a thin cobra binary aggregating the identifier,
// watermark, metadata and graph command groups.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"assetprov/cmd/cli"
)

func main() {
	root := &cobra.Command{Use: "assetprovctl"}
	cli.RegisterRoutes(root)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
