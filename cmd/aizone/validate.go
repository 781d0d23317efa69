// Copyright (C) 2026, AIZone Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aizone/behaviortree/builtin"
	"github.com/aizone/behaviortree/parser"
)

func validateCmd() *cobra.Command {
	var treePath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Parse a tree-definition file and report errors without running it",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(treePath)
			if err != nil {
				return fmt.Errorf("read tree file: %w", err)
			}
			reg := builtin.NewRegistry(nil)
			root, err := parser.TreeNodeParser(string(data), reg)
			if err != nil {
				return fmt.Errorf("parse tree: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: root node %q parsed\n", root.Name())
			return nil
		},
	}

	cmd.Flags().StringVar(&treePath, "tree", "", "path to a tree-definition file (required)")
	cmd.MarkFlagRequired("tree")
	return cmd
}
