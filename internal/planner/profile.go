package planner

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// requiredFields is the front-door contract for plan generation, in the
// exact order reported back to the client when any of them are absent.
var requiredFields = []string{
	"age",
	"biologicalSex",
	"height",
	"weight",
	"fitnessExperience",
	"fitnessGoals",
}

// ValidationError carries the names of the required fields that were
// missing or blank, in requiredFields order.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + e.Details()
}

// Details returns the comma-joined field list used in the 400 response body.
func (e *ValidationError) Details() string {
	return strings.Join(e.Missing, ", ")
}

// ValidateRequired checks the raw request body for the required field set.
// Presence checking only; no coercion happens here.
func ValidateRequired(raw map[string]any) *ValidationError {
	var missing []string
	for _, field := range requiredFields {
		v, ok := raw[field]
		if !ok || v == nil || v == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// UserProfile is the validated, coerced form of the request body. Optional
// health metrics are carried through to the prompt as display strings and
// never enter any calculation.
type UserProfile struct {
	Age                 float64
	BiologicalSex       string
	HeightCm            float64
	WeightKg            float64
	FitnessExperience   string
	FitnessGoals        string
	DietaryRestrictions string
	OxygenSaturation    string
	BloodPressure       string
	WaterIntake         string
	CalorieIntake       string
}

// ProfileFromRaw coerces a validated request body into a UserProfile.
// Numeric fields that fail to parse coerce to 0, matching Number(x)||0
// semantics on the client side.
func ProfileFromRaw(raw map[string]any) UserProfile {
	return UserProfile{
		Age:                 toFloat(raw["age"]),
		BiologicalSex:       toString(raw["biologicalSex"]),
		HeightCm:            toFloat(raw["height"]),
		WeightKg:            toFloat(raw["weight"]),
		FitnessExperience:   toString(raw["fitnessExperience"]),
		FitnessGoals:        toString(raw["fitnessGoals"]),
		DietaryRestrictions: toString(raw["dietaryRestrictions"]),
		OxygenSaturation:    toString(raw["oxygenSaturation"]),
		BloodPressure:       toString(raw["bloodPressure"]),
		WaterIntake:         toString(raw["waterIntake"]),
		CalorieIntake:       toString(raw["calorieIntake"]),
	}
}

func toFloat(v any) float64 {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case int:
		f = float64(t)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// toBool mirrors Boolean(x) truthiness for the concise flag: false, 0, "",
// and absent values are all false.
func toBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	default:
		return false
	}
}

func toString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
