package main

import (
	"fmt"

	"github.com/spf13/cobra"

	steg "github.com/zedseven/textsteg"
)

var capacityCmd = &cobra.Command{
	Use:   "capacity",
	Short: "Show how much text an image can hold",
	Args:  cobra.NoArgs,
	RunE:  runCapacity,
}

func init() {
	capacityCmd.Flags().StringP("input", "i", "", "cover image")
	capacityCmd.Flags().StringP("message", "m", "", "also check whether this message fits")
	capacityCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(capacityCmd)
}

func runCapacity(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	message, _ := cmd.Flags().GetString("message")

	_, format, _, err := resolve(cmd)
	if err != nil {
		return err
	}

	pixels, kind, err := steg.LoadPixels(inputPath)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %dx%d px (%s)\n", labelStyle.Render("Image:        "), pixels.W, pixels.H, kind)
	fmt.Fprintf(out, "%s %d bits\n", labelStyle.Render("Capacity:     "), steg.Capacity(pixels.W, pixels.H, format))
	fmt.Fprintf(out, "%s %d characters\n", labelStyle.Render("Max message:  "), steg.MaxMessageLen(pixels.W, pixels.H, format))

	if cmd.Flags().Changed("message") {
		n := len([]rune(message))
		if steg.CanEncode(message, pixels.W, pixels.H, format) {
			fmt.Fprintf(out, "%s %s (%d characters, %d bits)\n", labelStyle.Render("Message:      "),
				successStyle.Render("fits"), n, steg.RequiredBits(n))
		} else {
			fmt.Fprintf(out, "%s %s (%d characters, %d bits)\n", labelStyle.Render("Message:      "),
				warnStyle.Render("does not fit"), n, steg.RequiredBits(n))
		}
	}
	return nil
}
