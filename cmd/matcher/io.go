package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"job-match/internal/config"
	"job-match/internal/delivery/http/dto"
	"job-match/internal/usecase"

	"github.com/spf13/cobra"
)

const parallelThreshold = 256

func readJSONFile(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func writeOutput(cmd *cobra.Command, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	b = append(b, '\n')

	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		_, err := cmd.OutOrStdout().Write(b)
		return err
	}

	if dir := filepath.Dir(out); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(out, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	return nil
}

func matcherFor(cmd *cobra.Command) usecase.MatchingUsecase {
	workers, _ := cmd.Flags().GetInt("workers")
	return usecase.NewMatchingUsecase(config.MatchingConfig{Workers: workers, ParallelThreshold: parallelThreshold})
}

// validationError renders validator failures as one readable line.
func validationError(err error) error {
	fields := dto.ValidationErrors(err)
	if len(fields) == 0 {
		return fmt.Errorf("invalid input: %w", err)
	}
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f.Field+" ("+f.Rule+")")
	}
	return fmt.Errorf("invalid input: %s", strings.Join(parts, ", "))
}

func mustMarkRequired(cmd *cobra.Command, names ...string) {
	for _, n := range names {
		if err := cmd.MarkFlagRequired(n); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", n, err))
		}
	}
}
