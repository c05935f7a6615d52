package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/transcript-scorer/internal/rubric"
	"github.com/jonathan/transcript-scorer/internal/schemas"
)

var checkRubricCmd = &cobra.Command{
	Use:   "check-rubric",
	Short: "Validate a rubric YAML file",
	Long:  "Validate a rubric YAML file against the rubric schema and the per-metric score ceilings.",
	RunE:  runCheckRubric,
}

var checkRubricPath string

func init() {
	checkRubricCmd.Flags().StringVarP(&checkRubricPath, "rubric", "r", "", "Path to rubric YAML file (required)")
	if err := checkRubricCmd.MarkFlagRequired("rubric"); err != nil {
		panic(fmt.Sprintf("failed to mark rubric flag as required: %v", err))
	}

	rootCmd.AddCommand(checkRubricCmd)
}

func runCheckRubric(cmd *cobra.Command, _ []string) error {
	r, err := rubric.Load(checkRubricPath)
	if err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			for _, fe := range validationErr.Errors {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "  - %s: %s\n", fe.Field, fe.Message)
			}
		}
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Rubric is valid: %s (version %d)\n", checkRubricPath, r.Version)
	return nil
}
