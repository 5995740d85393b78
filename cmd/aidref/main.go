package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"aidref/internal/bootstrap"
	"aidref/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataPath string

	root := &cobra.Command{
		Use:           "aidref",
		Short:         "Expand public-aid project names into reference keywords",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataPath, "data", ".", "data directory holding aidref.yaml and the keyword database")

	root.AddCommand(newExpandCmd(&dataPath))
	root.AddCommand(newHighlightCmd(&dataPath))
	root.AddCommand(newSeedCmd(&dataPath))
	root.AddCommand(newImportSynonymsCmd(&dataPath))
	root.AddCommand(newKeywordCmd(&dataPath))
	return root
}

func loadApp(dataPath string) (*bootstrap.App, error) {
	cfg, err := config.Load(dataPath)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg)
}

// loadExpansionApp reads from the keyword database unless seedPath names a
// seed file to load into memory instead.
func loadExpansionApp(dataPath, seedPath string) (*bootstrap.App, error) {
	if seedPath == "" {
		return loadApp(dataPath)
	}
	cfg, err := config.Load(dataPath)
	if err != nil {
		return nil, err
	}
	return bootstrap.NewInMemory(cfg, seedPath)
}

func newExpandCmd(dataPath *string) *cobra.Command {
	var asJSON bool
	var seedPath string

	cmd := &cobra.Command{
		Use:   "expand <text...>",
		Short: "Expand a project name into intention and object keywords",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadExpansionApp(*dataPath, seedPath)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			out, err := app.ReferenceCLI.Expand(context.Background(), args)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "original:     %s\n", out.OriginalName)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "intentions:   %s\n", out.IntentionsString)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "objects:      %s\n", out.ObjectsString)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "simple words: %s\n", out.SimpleWordsString)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the expansion as JSON")
	cmd.Flags().StringVar(&seedPath, "seed", "", "expand against an in-memory graph loaded from this seed file")
	return cmd
}

func newHighlightCmd(dataPath *string) *cobra.Command {
	var seedPath string

	cmd := &cobra.Command{
		Use:   "highlight <text...>",
		Short: "List the significant words of a search keyword",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadExpansionApp(*dataPath, seedPath)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			words, err := app.ReferenceCLI.HighlightedWords(context.Background(), args)
			if err != nil {
				return err
			}
			for _, word := range words {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), word)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&seedPath, "seed", "", "use an in-memory graph loaded from this seed file")
	return cmd
}

func newSeedCmd(dataPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file>",
		Short: "Load keywords and project references from a YAML seed file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			out, err := app.ReferenceCLI.Seed(context.Background(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "seeded keywords=%d project_references=%d\n", out.Keywords, out.ProjectReferences)
			return nil
		},
	}
}

func newImportSynonymsCmd(dataPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "import-synonyms <file>",
		Short: "Merge flat synonym lists into the keyword graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			out, err := app.ReferenceCLI.ImportSynonymLists(context.Background(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "imported lists=%d roots=%d children=%d\n", out.Lists, out.CreatedRoots, out.CreatedChildren)
			return nil
		},
	}
}

func newKeywordCmd(dataPath *string) *cobra.Command {
	keyword := &cobra.Command{Use: "keyword", Short: "Keyword graph commands"}

	keyword.AddCommand(&cobra.Command{
		Use:   "show <name>",
		Short: "Show a keyword with its parent and children",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			out, err := app.ReferenceCLI.ShowKeyword(context.Background(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s (%d) intention=%t\n", out.Name, out.ID, out.Intention)
			if out.Parent != nil {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "parent: %s (%d)\n", out.Parent.Name, out.Parent.ID)
			}
			for _, child := range out.Children {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "- %s (%d) intention=%t\n", child.Name, child.ID, child.Intention)
			}
			return nil
		},
	})
	return keyword
}
