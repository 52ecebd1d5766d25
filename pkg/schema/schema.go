// Package schema validates skill packs and agent specs against embedded
// JSON schemas.
package schema

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed data/skill_pack.schema.json data/agent_spec.schema.json
var embeddedSchemaFS embed.FS

const (
	SkillPackFile = "data/skill_pack.schema.json"
	AgentSpecFile = "data/agent_spec.schema.json"
)

// ValidationError lists every schema violation found in a document.
type ValidationError struct {
	Prefix string
	Issues []string
}

func (e *ValidationError) Error() string {
	return formatNumbered(e.Prefix, e.Issues)
}

// ValidateSkillPack checks raw skill pack JSON.
func ValidateSkillPack(data []byte) error {
	return validateAgainstSchema(data, SkillPackFile, "skill pack validation failed")
}

// ValidateAgentSpec checks raw agent spec JSON.
func ValidateAgentSpec(data []byte) error {
	return validateAgainstSchema(data, AgentSpecFile, "agent spec validation failed")
}

func validateAgainstSchema(data []byte, schemaFile, errPrefix string) error {
	schemaData, err := embeddedSchemaFS.ReadFile(schemaFile)
	if err != nil {
		return fmt.Errorf("failed to read embedded schema %s: %w", schemaFile, err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaData),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", errPrefix, err)
	}
	if result.Valid() {
		return nil
	}

	issues := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		issues = append(issues, desc.String())
	}
	return &ValidationError{Prefix: errPrefix, Issues: issues}
}

// AsValidationError unwraps err into a *ValidationError when it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var v *ValidationError
	ok := errors.As(err, &v)
	return v, ok
}

func formatNumbered(prefix string, msgs []string) string {
	if len(msgs) == 1 {
		return fmt.Sprintf("%s: %s", prefix, msgs[0])
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s with %d errors:\n", prefix, len(msgs))
	for i, msg := range msgs {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, msg)
	}
	return strings.TrimSuffix(b.String(), "\n")
}
