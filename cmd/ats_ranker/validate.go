package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-ranker/internal/schemas"
	schemafiles "github.com/jonathan/ats-ranker/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a JSON file against a schema",
	Long: "Validates a JSON document against an embedded schema (" + strings.Join(schemafiles.Names(), ", ") +
		") or a JSON Schema file.",
	RunE: runValidate,
}

var (
	validateSchema string
	validateJSON   string
)

func init() {
	validateCmd.Flags().StringVar(&validateSchema, "schema", "", "Embedded schema name or path to a JSON Schema file (required)")
	validateCmd.Flags().StringVar(&validateJSON, "json", "", "Path to JSON file to validate (required)")

	if err := validateCmd.MarkFlagRequired("schema"); err != nil {
		panic(fmt.Sprintf("failed to mark schema flag as required: %v", err))
	}
	if err := validateCmd.MarkFlagRequired("json"); err != nil {
		panic(fmt.Sprintf("failed to mark json flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

func isEmbeddedSchema(name string) bool {
	for _, n := range schemafiles.Names() {
		if n == name {
			return true
		}
	}
	return false
}

func runValidate(cmd *cobra.Command, _ []string) error {
	var err error
	if isEmbeddedSchema(validateSchema) {
		var data []byte
		data, err = os.ReadFile(validateJSON)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", validateJSON, err)
		}
		err = schemas.Validate(validateSchema, data)
	} else {
		err = schemas.ValidateJSON(validateSchema, validateJSON)
	}

	if err != nil {
		return fmt.Errorf("Validation failed: %w", err)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Validation passed")
	return nil
}
