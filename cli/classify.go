package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"recycle-sorter/domain"
	"recycle-sorter/service"
)

// NewClassifyCmd creates the classify command
func NewClassifyCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "classify <name> <weight>",
		Short: "Classify a single item",
		Long: `Classify a single item and print its category and recyclability.

Examples:
  recycle-sorter classify "Oak Wood Table" 20
  recycle-sorter classify "Mystery Object" 3 --output json
  recycle-sorter classify -- "Feather" -0.5`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClassify(cmd, args, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format: text, json or yaml")

	return cmd
}

func runClassify(cmd *cobra.Command, args []string, output string) error {
	name, weight, err := service.ParseInput(domain.ClassifyInput{Name: args[0], Weight: args[1]})
	if errors.Is(err, domain.ErrInvalidInput) {
		return errors.New(domain.InvalidInputMessage)
	}
	if err != nil {
		return err
	}

	item := service.Classify(name, weight)
	return printItem(cmd.OutOrStdout(), output, item)
}

func printItem(w io.Writer, format string, item domain.ClassifiedItem) error {
	switch format {
	case "text", "":
		recyclable := "No"
		if item.Recyclable {
			recyclable = "Yes"
		}
		_, err := fmt.Fprintf(w, "%s (%s kg) -> %s\nRecyclable: %s\n",
			item.Name, strconv.FormatFloat(item.Weight, 'f', -1, 64), item.Category, recyclable)
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(item)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(item)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
