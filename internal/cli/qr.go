package cli

import (
	"fmt"

	"github.com/skip2/go-qrcode"
	"github.com/spf13/cobra"
)

func newQRCmd() *cobra.Command {
	var outFile string
	var size int

	cmd := &cobra.Command{
		Use:   "qr",
		Short: "Show your player QR code",
		Long: `Render the registered player's identifier as a QR code.

By default the code is drawn in the terminal. With --out it is written
as a PNG instead, suitable for printing a badge.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			self, err := requireIdentity()
			if err != nil {
				return err
			}

			if outFile != "" {
				if err := qrcode.WriteFile(string(self.ID), qrcode.Medium, size, outFile); err != nil {
					return fmt.Errorf("failed to write QR code: %w", err)
				}
				NewOutput(cfg.Output).PrintMessage(fmt.Sprintf("QR code written to %s", outFile))
				return nil
			}

			code, err := qrcode.New(string(self.ID), qrcode.Medium)
			if err != nil {
				return fmt.Errorf("failed to generate QR code: %w", err)
			}
			fmt.Print(code.ToSmallString(false))
			fmt.Printf("%s (%s)\n", self.Name, self.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&outFile, "out", "", "Write a PNG to this path instead of the terminal")
	cmd.Flags().IntVar(&size, "size", 256, "PNG size in pixels (with --out)")

	return cmd
}
