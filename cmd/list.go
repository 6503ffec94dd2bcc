package cmd

import (
	"strconv"

	"hdrmeta/pkg/meta"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list [files...]",
	Short: "Summarize extracted declarations per file in a table",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(configFlag)
		if err != nil {
			return err
		}

		results, err := scanAll(cfg, args)
		if err != nil {
			return err
		}

		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.SetHeader([]string{"File", "Namespaces", "Records", "Enums", "Aliases", "Macros", "Includes", "Warnings"})

		for _, r := range results {
			records := len(r.File.DeclsByKind(meta.DeclStruct)) + len(r.File.DeclsByKind(meta.DeclClass))
			table.Append([]string{
				r.File.Filename,
				strconv.Itoa(len(r.File.DeclsByKind(meta.DeclNamespace))),
				strconv.Itoa(records),
				strconv.Itoa(len(r.File.DeclsByKind(meta.DeclEnum))),
				strconv.Itoa(len(r.File.DeclsByKind(meta.DeclAlias))),
				strconv.Itoa(len(r.File.DeclsByKind(meta.DeclMacro))),
				strconv.Itoa(len(r.File.Includes)),
				strconv.Itoa(len(r.Warnings)),
			})
		}

		table.Render()
		return nil
	},
}
