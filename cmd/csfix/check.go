package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"csfix/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [path...]",
	Short: "Verify that every file survives a tokenize/render round trip",
	Long: `Check discovers PHP files below the given paths (default: the project
root), tokenizes them in parallel and verifies that each token stream renders
back to the original bytes. Mismatches are reported with a unified diff.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Bool("diff", true, "print a unified diff for mismatching files")
	checkCmd.Flags().Bool("strict", false, "treat lexer warnings as failures")
	checkCmd.Flags().Bool("no-cache", false, "do not read or write the token cache")
	checkCmd.Flags().Bool("clear-cache", false, "drop the token cache before checking")
	checkCmd.Flags().StringSlice("include", nil, "include globs (overrides csfix.toml)")
	checkCmd.Flags().StringSlice("exclude", nil, "exclude globs (overrides csfix.toml)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	s := settingsFrom(cmd.Context())
	if s == nil {
		return errors.New("settings not initialized")
	}
	cfg := s.manifest.Config
	flags := cmd.Flags()

	showDiff, err := flags.GetBool("diff")
	if err != nil {
		return fmt.Errorf("failed to get diff flag: %w", err)
	}
	strict, err := flags.GetBool("strict")
	if err != nil {
		return fmt.Errorf("failed to get strict flag: %w", err)
	}
	noCache, err := flags.GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	clearCache, err := flags.GetBool("clear-cache")
	if err != nil {
		return fmt.Errorf("failed to get clear-cache flag: %w", err)
	}
	include, exclude := cfg.Paths.Include, cfg.Paths.Exclude
	if flags.Changed("include") {
		if include, err = flags.GetStringSlice("include"); err != nil {
			return err
		}
	}
	if flags.Changed("exclude") {
		if exclude, err = flags.GetStringSlice("exclude"); err != nil {
			return err
		}
	}

	roots := args
	if len(roots) == 0 {
		roots = []string{s.manifest.Root}
	}
	files, err := driver.DiscoverAll(roots, include, exclude)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(files) == 0 {
		fmt.Fprintln(out, "no files to check")
		return nil
	}

	opts := driver.Options{
		Jobs:    s.jobs,
		BaseDir: s.manifest.Root,
		Strict:  strict || cfg.Run.Strict,
		Diff:    showDiff,
	}
	if cfg.Cache.Enabled && !noCache {
		dc, err := openDiskCache(s)
		if err != nil {
			return fmt.Errorf("token cache: %w", err)
		}
		if clearCache {
			if err := dc.DropAll(); err != nil {
				return fmt.Errorf("token cache: %w", err)
			}
		}
		opts.DiskCache = dc
	}

	var res *driver.Result
	if enabled(s.ui) {
		res, err = runProcessWithUI(cmd.Context(), "checking", files, opts)
	} else {
		res, err = driver.Process(cmd.Context(), files, opts)
	}
	if err != nil {
		return err
	}

	printCheckReport(out, cmd.ErrOrStderr(), res)
	if s.timings {
		fmt.Fprint(cmd.ErrOrStderr(), res.Timing.Summary())
	}
	if failed := res.Failed(); failed > 0 {
		s.failedFiles = make(map[string]bool, failed)
		for _, fr := range res.Files {
			if fr.Err != nil {
				s.failedFiles[fr.Path] = true
			}
		}
		return fmt.Errorf("%d of %d files failed", failed, len(res.Files))
	}
	return nil
}

func openDiskCache(s *settings) (*driver.DiskCache, error) {
	if dir := s.manifest.CacheDir(); dir != "" {
		return driver.OpenDiskCacheAt(dir)
	}
	return driver.OpenDiskCache("csfix")
}

func printCheckReport(out, errOut io.Writer, res *driver.Result) {
	cached := 0
	for _, fr := range res.Files {
		if fr.Cached {
			cached++
		}
		for _, w := range fr.Warnings {
			fmt.Fprintf(errOut, "%s:%s\n", fr.Path, w)
		}
		if fr.Err == nil {
			continue
		}
		fmt.Fprintf(errOut, "%s: %v\n", fr.Path, fr.Err)
		if fr.Diff != "" {
			diff := fr.Diff
			if colorEnabled() {
				diff = driver.ColorizeDiff(diff)
			}
			fmt.Fprintln(errOut, diff)
		}
	}
	fmt.Fprintf(out, "checked %d files: %d failed, %d from cache\n", len(res.Files), res.Failed(), cached)
}
