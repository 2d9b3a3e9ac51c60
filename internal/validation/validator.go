// Package validation provides JSON-LD document validation for Emulium models.
//
// This package validates both the structure and semantic correctness of JSON-LD
// documents representing scenarios, scripts and scheduled actions. It uses:
//   - go-playground/validator for struct-level validation
//   - json-gold for JSON-LD semantic validation
//
// # Validation Process
//
// 1. JSON parsing - Ensures valid JSON syntax
// 2. JSON-LD validation - @context/@type/@id presence and expandability
// 3. Field validation - Checks required fields and domain constraints
//
// # Usage Example
//
//	validator := validation.New()
//	result, err := validator.ValidateScenario(jsonData)
//	if err != nil {
//	    // Handle error
//	}
//	if !result.Valid {
//	    for _, err := range result.Errors {
//	        fmt.Printf("%s: %s\n", err.Field, err.Message)
//	    }
//	}
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/piprate/json-gold/ld"

	"evalgo.org/emulium/models"
)

// Validator handles JSON-LD document validation for Emulium models.
type Validator struct {
	// structValidator validates Go struct constraints and tags
	structValidator *validator.Validate

	// jsonldProcessor validates JSON-LD semantic correctness
	jsonldProcessor *ld.JsonLdProcessor
}

// ValidationError represents a single validation error with field-level
// details.
type ValidationError struct {
	// Field is the name of the field that failed validation
	Field string `json:"field"`

	// Message describes why the validation failed
	Message string `json:"message"`

	// Value is the invalid value that caused the error (optional)
	Value interface{} `json:"value,omitempty"`
}

// ValidationResult represents the complete result of a validation
// operation.
type ValidationResult struct {
	// Valid is true if validation passed, false otherwise
	Valid bool `json:"valid"`

	// Errors contains all validation errors found (empty if Valid is true)
	Errors []ValidationError `json:"errors,omitempty"`
}

// New creates a new Validator instance with struct and JSON-LD
// validators.
func New() *Validator {
	return &Validator{
		structValidator: validator.New(),
		jsonldProcessor: ld.NewJsonLdProcessor(),
	}
}

// ValidateStruct runs the struct-tag rules of any model or request type
// and converts failures into field-level errors. A nil return means the
// value passed.
func (v *Validator) ValidateStruct(s interface{}) []ValidationError {
	err := v.structValidator.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return []ValidationError{{Field: "document", Message: err.Error()}}
	}

	result := make([]ValidationError, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		result = append(result, ValidationError{
			Field:   fe.Field(),
			Message: tagMessage(fe),
			Value:   fe.Value(),
		})
	}
	return result
}

// tagMessage renders a validator tag failure as a human message.
func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "min":
		return fmt.Sprintf("Must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s characters", fe.Param())
	case "email":
		return "Must be a valid email address"
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gte":
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "url":
		return "Must be a valid URL"
	default:
		return fmt.Sprintf("Failed validation rule %q", fe.Tag())
	}
}

// ValidateDocument validates an arbitrary JSON-LD document: JSON syntax,
// the @context/@type/@id triple, and expandability.
func (v *Validator) ValidateDocument(data []byte) (*ValidationResult, error) {
	errs := v.validateJSONLD(data)
	return &ValidationResult{
		Valid:  len(errs) == 0,
		Errors: errs,
	}, nil
}

// ValidateScenario validates a scenario JSON-LD document.
func (v *Validator) ValidateScenario(data []byte) (*ValidationResult, error) {
	var scenario models.Scenario

	if err := json.Unmarshal(data, &scenario); err != nil {
		return invalidJSONResult(err), nil
	}

	allErrors := v.validateJSONLD(data)
	allErrors = append(allErrors, v.validateScenarioFields(&scenario)...)

	return &ValidationResult{
		Valid:  len(allErrors) == 0,
		Errors: allErrors,
	}, nil
}

// ValidateScript validates a stored-script JSON-LD document.
func (v *Validator) ValidateScript(data []byte) (*ValidationResult, error) {
	var script models.Script

	if err := json.Unmarshal(data, &script); err != nil {
		return invalidJSONResult(err), nil
	}

	allErrors := v.validateJSONLD(data)
	allErrors = append(allErrors, v.validateScriptFields(&script)...)

	return &ValidationResult{
		Valid:  len(allErrors) == 0,
		Errors: allErrors,
	}, nil
}

// ValidateScheduledAction validates a scheduled-action JSON-LD document.
func (v *Validator) ValidateScheduledAction(data []byte) (*ValidationResult, error) {
	var action models.ScheduledAction

	if err := json.Unmarshal(data, &action); err != nil {
		return invalidJSONResult(err), nil
	}

	allErrors := v.validateJSONLD(data)
	allErrors = append(allErrors, v.validateActionFields(&action)...)

	return &ValidationResult{
		Valid:  len(allErrors) == 0,
		Errors: allErrors,
	}, nil
}

func invalidJSONResult(err error) *ValidationResult {
	return &ValidationResult{
		Valid: false,
		Errors: []ValidationError{
			{
				Field:   "document",
				Message: fmt.Sprintf("Invalid JSON: %v", err),
			},
		},
	}
}

// validateJSONLD validates JSON-LD structure using json-gold.
func (v *Validator) validateJSONLD(data []byte) []ValidationError {
	var errs []ValidationError

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		errs = append(errs, ValidationError{
			Field:   "document",
			Message: fmt.Sprintf("Invalid JSON: %v", err),
		})
		return errs
	}

	docMap, ok := doc.(map[string]interface{})
	if !ok {
		errs = append(errs, ValidationError{
			Field:   "document",
			Message: "Document must be a JSON object",
		})
		return errs
	}

	if _, hasContext := docMap["@context"]; !hasContext {
		errs = append(errs, ValidationError{
			Field:   "@context",
			Message: "Missing @context field (required for JSON-LD)",
		})
	}
	if _, hasType := docMap["@type"]; !hasType {
		errs = append(errs, ValidationError{
			Field:   "@type",
			Message: "Missing @type field (required for JSON-LD)",
		})
	}
	if _, hasID := docMap["@id"]; !hasID {
		errs = append(errs, ValidationError{
			Field:   "@id",
			Message: "Missing @id field (required for JSON-LD)",
		})
	}

	// Expand the document to prove it is well-formed JSON-LD.
	options := ld.NewJsonLdOptions("")
	if _, err := v.jsonldProcessor.Expand(doc, options); err != nil {
		errs = append(errs, ValidationError{
			Field:   "document",
			Message: fmt.Sprintf("Invalid JSON-LD structure: %v", err),
		})
	}

	return errs
}

// validateScenarioFields validates scenario-specific business logic.
// Unlike the deploy-time gate, which rejects on the first problem, this
// collects every problem so an author can fix a document in one pass.
func (v *Validator) validateScenarioFields(scenario *models.Scenario) []ValidationError {
	var errs []ValidationError

	if scenario.Name == "" {
		errs = append(errs, ValidationError{
			Field:   "name",
			Message: "Name is required",
		})
	}

	if scenario.Type != "" && scenario.Type != "Scenario" {
		errs = append(errs, ValidationError{
			Field:   "@type",
			Message: "Type must be 'Scenario'",
			Value:   scenario.Type,
		})
	}

	def := &scenario.Definition

	validLayouts := map[string]bool{"grid": true, "circle": true, "row": true}
	if def.Layout != "" && !validLayouts[def.Layout] {
		errs = append(errs, ValidationError{
			Field:   "definition.layout",
			Message: "Layout must be 'grid', 'circle' or 'row'",
			Value:   def.Layout,
		})
	}

	declared := make(map[string]bool, len(def.Nodes))
	for i, node := range def.Nodes {
		field := fmt.Sprintf("definition.nodes[%d]", i)

		if node.Name == "" {
			errs = append(errs, ValidationError{
				Field:   field + ".name",
				Message: "Node name is required",
			})
		} else if declared[node.Name] {
			errs = append(errs, ValidationError{
				Field:   field + ".name",
				Message: "Node name is already used",
				Value:   node.Name,
			})
		}
		declared[node.Name] = true

		if node.TemplateID == "" && node.TemplateKey == "" && node.TemplateName == "" {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: "Node needs a template reference (template_id, template_key or template_name)",
			})
		}
		if node.TemplateKey != "" {
			if _, ok := def.Templates[node.TemplateKey]; !ok {
				errs = append(errs, ValidationError{
					Field:   field + ".template_key",
					Message: "Template key is not defined in the templates map",
					Value:   node.TemplateKey,
				})
			}
		}

		for j, script := range node.Scripts {
			scriptField := fmt.Sprintf("%s.scripts[%d]", field, j)
			if script.Name == "" {
				errs = append(errs, ValidationError{
					Field:   scriptField + ".name",
					Message: "Script name is required",
				})
			}
			if script.Content == "" && script.ScriptID == "" {
				errs = append(errs, ValidationError{
					Field:   scriptField,
					Message: "Script needs inline content or a script_id reference",
				})
			}
			if script.Priority < 0 {
				errs = append(errs, ValidationError{
					Field:   scriptField + ".priority",
					Message: "Priority must be at least 1",
					Value:   script.Priority,
				})
			}
		}
	}

	for i, link := range def.Links {
		field := fmt.Sprintf("definition.links[%d]", i)
		for side, endpoint := range map[string]models.LinkEndpoint{"a": link.A, "b": link.B} {
			if endpoint.Node == "" {
				errs = append(errs, ValidationError{
					Field:   fmt.Sprintf("%s.%s.node", field, side),
					Message: "Link endpoint node name is required",
				})
			} else if !declared[endpoint.Node] {
				errs = append(errs, ValidationError{
					Field:   fmt.Sprintf("%s.%s.node", field, side),
					Message: "Link endpoint references an undeclared node",
					Value:   endpoint.Node,
				})
			}
		}
	}

	return errs
}

// validateScriptFields validates stored-script business logic.
func (v *Validator) validateScriptFields(script *models.Script) []ValidationError {
	var errs []ValidationError

	if script.Name == "" {
		errs = append(errs, ValidationError{
			Field:   "name",
			Message: "Name is required",
		})
	}

	if script.Content == "" {
		errs = append(errs, ValidationError{
			Field:   "text",
			Message: "Script content (text) is required",
		})
	}

	if script.Type != "" && script.Type != "SoftwareSourceCode" {
		errs = append(errs, ValidationError{
			Field:   "@type",
			Message: "Type must be 'SoftwareSourceCode'",
			Value:   script.Type,
		})
	}

	return errs
}

// validateActionFields validates scheduled-action business logic.
func (v *Validator) validateActionFields(action *models.ScheduledAction) []ValidationError {
	var errs []ValidationError

	if action.Name == "" {
		errs = append(errs, ValidationError{
			Field:   "name",
			Message: "Name is required",
		})
	}

	validTypes := map[string]bool{
		models.ActionTypeDeploy:   true,
		models.ActionTypeStop:     true,
		models.ActionTypeTeardown: true,
	}
	if action.Type != "" && !validTypes[action.Type] {
		errs = append(errs, ValidationError{
			Field: "@type",
			Message: fmt.Sprintf("Type must be one of: %s",
				strings.Join([]string{models.ActionTypeDeploy, models.ActionTypeStop, models.ActionTypeTeardown}, ", ")),
			Value: action.Type,
		})
	}

	if action.Object == nil || (action.Object.ID == "" && action.Object.Name == "") {
		errs = append(errs, ValidationError{
			Field:   "object",
			Message: "Object must reference a scenario by @id or name",
		})
	}

	if action.Schedule == nil {
		errs = append(errs, ValidationError{
			Field:   "schedule",
			Message: "Schedule is required",
		})
	} else {
		if action.Schedule.RepeatFrequency == "" {
			errs = append(errs, ValidationError{
				Field:   "schedule.repeatFrequency",
				Message: "Repeat frequency is required (ISO 8601 duration, e.g. P1D)",
			})
		} else if !strings.HasPrefix(action.Schedule.RepeatFrequency, "P") {
			errs = append(errs, ValidationError{
				Field:   "schedule.repeatFrequency",
				Message: "Repeat frequency must be an ISO 8601 duration (e.g. PT30M, P1D)",
				Value:   action.Schedule.RepeatFrequency,
			})
		}

		validDays := map[string]bool{
			"Monday": true, "Tuesday": true, "Wednesday": true, "Thursday": true,
			"Friday": true, "Saturday": true, "Sunday": true,
		}
		for i, day := range action.Schedule.ByDay {
			if !validDays[day] {
				errs = append(errs, ValidationError{
					Field:   fmt.Sprintf("schedule.byDay[%d]", i),
					Message: "Day must be a full English weekday name (schema.org style)",
					Value:   day,
				})
			}
		}
		for i, month := range action.Schedule.ByMonth {
			if month < 1 || month > 12 {
				errs = append(errs, ValidationError{
					Field:   fmt.Sprintf("schedule.byMonth[%d]", i),
					Message: "Month must be between 1 and 12",
					Value:   month,
				})
			}
		}
	}

	return errs
}
