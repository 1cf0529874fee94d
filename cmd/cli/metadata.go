package cli

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"assetprov/core"
)

// bundles holds process-lifetime metadata bundles keyed by identifier, so a
// sequence of `metadata set` / `metadata view` invocations within one CLI
// session (or one test) can build up a bundle incrementally. There is no
// persistence across process restarts; the core library itself is stateless.
var (
	bundles   = map[string]*core.MetadataBundle{}
	bundlesMu sync.Mutex
)

func bundleFor(id string) *core.MetadataBundle {
	bundlesMu.Lock()
	defer bundlesMu.Unlock()
	b, ok := bundles[id]
	if !ok {
		b = core.NewMetadataBundle(id, nil)
		bundles[id] = b
	}
	return b
}

var mdRootCmd = &cobra.Command{Use: "metadata", Short: "Compose and inspect hierarchical metadata bundles"}

var mdCharClass string

var mdSetCmd = &cobra.Command{
	Use:   "set [identifier] [layer] [json-data]",
	Short: "Replace a layer's contents wholesale",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		var data map[string]interface{}
		if err := json.Unmarshal([]byte(args[2]), &data); err != nil {
			return fmt.Errorf("parse json-data: %w", err)
		}
		b := bundleFor(args[0])
		b.CharClass = mdCharClass
		b.SetLayer(core.LayerTag(args[1]), data)
		return nil
	},
}

var mdUpdateCmd = &cobra.Command{
	Use:   "update-field [identifier] [layer] [dot-path] [json-value]",
	Short: "Set a dot-path field within a layer",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		var value interface{}
		if err := json.Unmarshal([]byte(args[3]), &value); err != nil {
			return fmt.Errorf("parse json-value: %w", err)
		}
		return bundleFor(args[0]).UpdateField(core.LayerTag(args[1]), args[2], value)
	},
}

var mdValidateCmd = &cobra.Command{
	Use:   "validate [identifier]",
	Short: "Validate every present layer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bundleFor(args[0]).ValidateAll(); err != nil {
			b, _ := json.MarshalIndent(core.NewFailure(err), "", "  ")
			fmt.Println(string(b))
			return nil
		}
		fmt.Println(`{"ok":true}`)
		return nil
	},
}

var mdViewCmd = &cobra.Command{
	Use:   "view [identifier]",
	Short: "Print the integrated view merging every present layer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, _ := json.MarshalIndent(bundleFor(args[0]).IntegratedView(), "", "  ")
		fmt.Println(string(b))
		return nil
	},
}

func init() {
	mdSetCmd.Flags().StringVar(&mdCharClass, "char-class", "", "characteristics sub-kind: model-card|data-sheet")
	mdRootCmd.AddCommand(mdSetCmd, mdUpdateCmd, mdValidateCmd, mdViewCmd)
}

// MetadataCmd exposes the root command for registration in root.go.
var MetadataCmd = mdRootCmd
