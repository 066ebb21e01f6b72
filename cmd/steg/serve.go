package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	steg "github.com/zedseven/textsteg"
	"github.com/zedseven/textsteg/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve hide, dig and capacity over HTTP",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("listen", ":8080", "address to listen on")
	serveCmd.Flags().String("encoding", "png", "default encoding of hidden images: png|bmp|tiff")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, format, lvl, err := resolve(cmd)
	if err != nil {
		return err
	}

	addr, _ := cmd.Flags().GetString("listen")
	if !cmd.Flags().Changed("listen") && cfg.Listen != nil {
		addr = *cfg.Listen
	}
	encName, _ := cmd.Flags().GetString("encoding")
	if !cmd.Flags().Changed("encoding") && cfg.Encoding != nil {
		encName = *cfg.Encoding
	}
	enc, err := steg.ParseEncoding(encName)
	if err != nil {
		return err
	}

	var logger *log.Logger
	if lvl > steg.OutputNone {
		logger = log.New(os.Stderr, "steg: ", log.LstdFlags)
	}
	return server.New(format, enc, logger).ListenAndServe(addr)
}
