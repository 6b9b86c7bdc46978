package cli

import (
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

// SetVersion records build information for the version command.
func SetVersion(v, c string) {
	version = v
	commit = c
}

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recycle-sorter",
		Short: "Sort household items into recycling categories",
		Long: `recycle-sorter classifies an item as Plastic, Glass, Metal or Wood from
its name and weight, and tells whether it can be recycled.

A material word in the name decides the category; otherwise the weight does.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewClassifyCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

func Execute() error {
	return NewRootCmd().Execute()
}
