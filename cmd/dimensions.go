/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/allbin/go-gsend/dimension"
	"github.com/allbin/go-gsend/internal/tui/styles"
)

// dimensionsCmd represents the dimensions command
var dimensionsCmd = &cobra.Command{
	Use:   "dimensions [size]",
	Short: "Resolve a paper size or width/height pair",
	Long: `Resolve a page size name or an explicit width and height to physical
dimensions, and print it in every supported unit.

Sizes are a3, a4 or a5 with an optional -portrait or -landscape suffix, or two
values with a unit each (mm, cm, m, in) separated by a space or comma.

Examples:
  gsend dimensions a4-landscape
  gsend dimensions "21cm, 29.7cm"
  gsend dimensions --list`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if list, _ := cmd.Flags().GetBool("list"); list {
			for _, name := range dimension.PageSizeNames() {
				literal, _ := dimension.PageSize(name)
				fmt.Printf("%-14s %s\n", name, literal)
			}
			return nil
		}

		input := viper.GetString("dimensions")
		if len(args) == 1 {
			input = args[0]
		}

		size, err := dimension.Resolve(input)
		if err != nil {
			return err
		}

		fmt.Println(styles.CommandStyle.Render(size.String()))
		for _, u := range []dimension.Unit{dimension.Millimeter, dimension.Centimeter, dimension.Inch} {
			converted, err := size.To(u)
			if err != nil {
				return err
			}
			fmt.Printf("  %-3s %s\n", u+":", formatSize(converted))
		}
		return nil
	},
}

func formatSize(s dimension.Size) string {
	return strings.Join([]string{
		fmt.Sprintf("%.2f", s.Width.Value),
		"x",
		fmt.Sprintf("%.2f", s.Height.Value),
	}, " ")
}

func init() {
	rootCmd.AddCommand(dimensionsCmd)

	rootCmd.PersistentFlags().StringP("dimensions", "D", dimension.DefaultDimensions, "artwork size: a page size name or \"<w><unit> <h><unit>\"")
	_ = viper.BindPFlag("dimensions", rootCmd.PersistentFlags().Lookup("dimensions"))

	dimensionsCmd.Flags().BoolP("list", "l", false, "list the known page sizes")
}
