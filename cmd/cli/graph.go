package cli

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"assetprov/core"
)

// sharedGraph is the process-lifetime graph the graph subcommands mutate.
// The core does not lock internally, so the commands serialize access with
// a package-level mutex.
var (
	sharedGraph   = core.NewGraph(nil, nil)
	sharedGraphMu sync.Mutex
)

var graphRootCmd = &cobra.Command{Use: "graph", Short: "Build and query the relationship graph"}

var graphAddNodeCmd = &cobra.Command{
	Use:   "add-node [id] [entity-type] [label]",
	Short: "Add or replace a node",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		sharedGraphMu.Lock()
		defer sharedGraphMu.Unlock()
		_, err := sharedGraph.AddNode(args[0], core.EntityType(args[1]), args[2], nil)
		return err
	},
}

var graphAddEdgeCmd = &cobra.Command{
	Use:   "add-edge [source] [target] [relationship-type]",
	Short: "Add or merge an edge",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		sharedGraphMu.Lock()
		defer sharedGraphMu.Unlock()
		_, err := sharedGraph.AddEdge(args[0], args[1], core.RelationshipType(args[2]), nil)
		return err
	},
}

var (
	graphMaxDepth int
)

var graphFindPathsCmd = &cobra.Command{
	Use:   "find-paths [source] [target]",
	Short: "Enumerate simple paths between two nodes",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sharedGraphMu.Lock()
		defer sharedGraphMu.Unlock()
		paths, err := sharedGraph.FindPaths(args[0], args[1], core.PathOptions{MaxDepth: graphMaxDepth})
		if err != nil {
			return err
		}
		b, _ := json.MarshalIndent(paths, "", "  ")
		fmt.Println(string(b))
		return nil
	},
}

var graphRemoveNodeCmd = &cobra.Command{
	Use:   "remove-node [id]",
	Short: "Remove a node and every incident edge",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sharedGraphMu.Lock()
		defer sharedGraphMu.Unlock()
		return sharedGraph.RemoveNode(args[0])
	},
}

func init() {
	graphFindPathsCmd.Flags().IntVar(&graphMaxDepth, "max-depth", 10, "maximum path length in hops")
	graphRootCmd.AddCommand(graphAddNodeCmd, graphAddEdgeCmd, graphFindPathsCmd, graphRemoveNodeCmd)
}

// GraphCmd exposes the root command for registration in root.go.
var GraphCmd = graphRootCmd
