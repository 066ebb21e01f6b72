package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	steg "github.com/zedseven/textsteg"
)

var hideCmd = &cobra.Command{
	Use:   "hide",
	Short: "Hide a message in an image",
	Example: `  steg hide -i cover.png -m "meet at dawn" -o secret.png
  steg hide -i photo.jpg --message-file note.txt -o secret.tiff`,
	Args: cobra.NoArgs,
	RunE: runHide,
}

func init() {
	hideCmd.Flags().StringP("input", "i", "", "cover image")
	hideCmd.Flags().StringP("output", "o", "", "output image (.png, .bmp or .tiff)")
	hideCmd.Flags().StringP("message", "m", "", "message to hide")
	hideCmd.Flags().String("message-file", "", "read the message from a file")
	hideCmd.Flags().String("encoding", "", "output encoding, overriding the output extension: png|bmp|tiff")
	hideCmd.MarkFlagRequired("input")
	hideCmd.MarkFlagRequired("output")
	hideCmd.MarkFlagsMutuallyExclusive("message", "message-file")
	hideCmd.MarkFlagsOneRequired("message", "message-file")
	rootCmd.AddCommand(hideCmd)
}

func runHide(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")
	message, _ := cmd.Flags().GetString("message")
	messageFile, _ := cmd.Flags().GetString("message-file")
	encName, _ := cmd.Flags().GetString("encoding")

	cfg, format, lvl, err := resolve(cmd)
	if err != nil {
		return err
	}

	if messageFile != "" {
		b, err := os.ReadFile(messageFile)
		if err != nil {
			return fmt.Errorf("reading message: %w", err)
		}
		message = strings.TrimSuffix(string(b), "\n")
	}

	if encName == "" && cfg.Encoding != nil && !hasExt(outputPath) {
		encName = *cfg.Encoding
	}
	var enc steg.Encoding
	if encName != "" {
		if enc, err = steg.ParseEncoding(encName); err != nil {
			return err
		}
	}

	err = steg.Hide(&steg.HideConfig{
		ImagePath: inputPath,
		Message:   message,
		OutPath:   outputPath,
		Encoding:  enc,
		Format:    format,
	}, lvl)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s %d characters → %s\n", successStyle.Render("Hidden"), len([]rune(message)), outputPath)
	return nil
}

func hasExt(path string) bool {
	i := strings.LastIndexByte(path, '.')
	return i >= 0 && i > strings.LastIndexAny(path, `/\`)
}
