package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xuexiangjys/xui/internal/config"
)

var schemaCmd = &cobra.Command{
	Use:    "schema",
	Short:  "Generate JSON schema for configuration",
	Long:   "Generate JSON schema for the xui configuration file",
	Hidden: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := config.Schema()
		if err != nil {
			return err
		}
		cmd.Println(string(data))
		return nil
	},
}
