package main

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	steg "github.com/zedseven/textsteg"
)

var digCmd = &cobra.Command{
	Use:     "dig",
	Short:   "Recover a message hidden in an image",
	Example: "  steg dig -i secret.png --copy",
	Args:    cobra.NoArgs,
	RunE:    runDig,
}

func init() {
	digCmd.Flags().StringP("input", "i", "", "image to read")
	digCmd.Flags().Bool("copy", false, "copy the recovered message to the clipboard")
	digCmd.Flags().Bool("partial", false, "print what was decoded even when no message was found")
	digCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(digCmd)
}

func runDig(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	copyOut, _ := cmd.Flags().GetBool("copy")
	partial, _ := cmd.Flags().GetBool("partial")

	_, format, lvl, err := resolve(cmd)
	if err != nil {
		return err
	}

	res, err := steg.Dig(steg.DigConfig{ImagePath: inputPath, Format: format}, lvl)
	if err != nil {
		return err
	}

	if !res.Found {
		fmt.Fprintln(cmd.ErrOrStderr(), warnStyle.Render("no hidden message found"))
		if partial {
			fmt.Fprintln(cmd.OutOrStdout(), res.Message)
		}
		return errNoMessage
	}

	fmt.Fprintln(cmd.OutOrStdout(), res.Message)
	if copyOut {
		if err := clipboard.WriteAll(res.Message); err != nil {
			return fmt.Errorf("copying to clipboard: %w", err)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), labelStyle.Render("copied to clipboard"))
	}
	return nil
}
