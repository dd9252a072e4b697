package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"csfix/internal/lexer"
	"csfix/internal/stream"
	"csfix/internal/tokfmt"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.php",
	Short: "Print the token stream of a PHP file",
	Long:  `Tokenize splits a file (or stdin with "-") into tokens and prints them`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json|yaml|msgpack)")
	tokenizeCmd.Flags().Int("max-text", 0, "truncate token text in pretty output (0 = default)")
	tokenizeCmd.Flags().Bool("strict", false, "fail on the first lexer warning")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	formatFlag, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format, err := tokfmt.ParseFormat(formatFlag)
	if err != nil {
		return err
	}
	maxText, err := cmd.Flags().GetInt("max-text")
	if err != nil {
		return fmt.Errorf("failed to get max-text flag: %w", err)
	}
	strict, err := cmd.Flags().GetBool("strict")
	if err != nil {
		return fmt.Errorf("failed to get strict flag: %w", err)
	}

	text, err := readInput(cmd.InOrStdin(), args[0])
	if err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()
	lx := lexer.New(lexer.Options{
		Strict: strict,
		Reporter: lexer.ReporterFunc(func(code lexer.Code, line uint32, msg string) {
			fmt.Fprintf(stderr, "%s:%d: warning: %s (%s)\n", args[0], line, msg, code)
		}),
	})
	s, err := stream.FromSource(text, stream.Options{Tokenizer: lx})
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	return tokfmt.Write(cmd.OutOrStdout(), s.Records(), format, tokfmt.Options{
		Color:   colorEnabled(),
		MaxText: maxText,
	})
}

func readInput(stdin io.Reader, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	// #nosec G304 -- path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}
