package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-friendly labels
var FieldLabels = map[string]string{
	// JobSeekerProfile fields
	"FullName":        "Full Name",
	"City":            "City",
	"DesiredRole":     "Desired Role",
	"Bio":             "Bio",
	"YearsExperience": "Years of Experience",
	"Age":             "Age",
	"Phone":           "Phone Number",

	// Employer fields
	"CompanyName":        "Company Name",
	"EmployerType":       "Employer Type",
	"RegistrationNumber": "Registration Number",
	"NationalIDNumber":   "National ID Number",
	"Notes":              "Review Notes",
	"Action":             "Review Action",

	// CV section fields
	"Type":     "Section Type",
	"Position": "Section Position",
	"Text":     "Summary Text",
	"Company":  "Company",
	"Title":    "Title",
	"School":   "School",
	"Degree":   "Degree",
	"Field":    "Field of Study",
	"Name":     "Name",
	"Level":    "Level",
	"Issuer":   "Issuer",
	"URL":      "URL",

	// Interview fields
	"JobseekerID":   "Jobseeker",
	"ProposedDate":  "Proposed Date",
	"Location":      "Location",
	"InterviewType": "Interview Type",
	"Message":       "Message",
	"Decision":      "Decision",

	// Search fields
	"MinYears": "Minimum Years of Experience",
	"MinAge":   "Minimum Age",
	"MaxAge":   "Maximum Age",
	"Page":     "Page",
	"Limit":    "Page Size",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var messages []string

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		// Not a validation error, return generic message
		return []string{err.Error()}
	}

	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}

	return messages
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s: required", label)

	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: must be at least %s characters", label, param)
		}
		return fmt.Sprintf("%s: must be at least %s", label, param)

	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: must be at most %s characters", label, param)
		}
		return fmt.Sprintf("%s: must be at most %s", label, param)

	case "oneof":
		return fmt.Sprintf("%s: must be one of: %s", label, strings.ReplaceAll(param, " ", ", "))

	case "email":
		return fmt.Sprintf("%s: invalid email format", label)

	case "url":
		return fmt.Sprintf("%s: invalid URL format", label)

	case "valid_name":
		return fmt.Sprintf("%s: only letters, spaces, and common punctuation (. ' - /) are allowed", label)

	case "valid_phone":
		return fmt.Sprintf("%s: invalid phone number (7-15 digits, with or without +)", label)

	case "gtefield":
		return fmt.Sprintf("%s: must be greater than or equal to %s", label, getFieldLabel(param))

	default:
		return fmt.Sprintf("%s: validation failed (%s)", label, e.Tag())
	}
}

// getFieldLabel returns the user-friendly label for a field
func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	// Return field name with spaces between camelCase words
	return formatCamelCase(fieldName)
}

// formatCamelCase converts CamelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}
