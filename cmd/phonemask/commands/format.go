package commands

import (
	"bufio"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dshills/phonemask/internal/mask"
)

func formatCmd(g *globals) *cobra.Command {
	var (
		code   string
		event  string
		matrix string
	)

	cmd := &cobra.Command{
		Use:   "format [TEXT...]",
		Short: "Format raw text as a masked phone number",
		Long: `Format applies the mask to each argument, or to each line of standard
input when no arguments are given, and prints the text and caret offset.
Blur events print "-" for the caret since they leave it in place.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := mask.ParseKind(event)
			if err != nil {
				return err
			}

			m, err := resolveMatrix(g, cmd, code, matrix)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(args) > 0 {
				for _, raw := range args {
					printResult(out, mask.Format(raw, m, kind))
				}
				return nil
			}

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				printResult(out, mask.Format(scanner.Text(), m, kind))
			}
			return scanner.Err()
		},
	}

	cmd.Flags().StringVar(&code, "country", "", "region or dialing code (default from config)")
	cmd.Flags().StringVar(&event, "event", "input", "event kind: input, focus, or blur")
	cmd.Flags().StringVar(&matrix, "matrix", "", `explicit mask such as "+1 (___) ___-____"`)
	cmd.MarkFlagsMutuallyExclusive("country", "matrix")
	return cmd
}

func resolveMatrix(g *globals, cmd *cobra.Command, code, matrix string) (mask.Matrix, error) {
	if matrix != "" {
		m, err := mask.ParseMatrix(matrix)
		if err != nil {
			return mask.Matrix{}, err
		}
		return m, m.Validate()
	}
	c := g.app.InitialCountry(cmd.Context(), code)
	g.app.Logger().Debug("formatting as %s", c)
	return c.Matrix(), nil
}

func printResult(w io.Writer, res mask.Result) {
	if res.MoveCaret {
		fmt.Fprintf(w, "%s\t%d\n", res.Text, res.Caret)
		return
	}
	fmt.Fprintf(w, "%s\t-\n", res.Text)
}
