package planner

import (
	"math"
	"strings"
)

// NutritionTargets holds the computed daily targets. Derived solely from a
// UserProfile, immutable once computed, and scoped to a single request.
type NutritionTargets struct {
	BMR            float64
	TDEE           int
	TargetCalories int
	ProteinG       int
	CarbsG         int
	FatG           int
}

// Calorie floor: targets are never pushed below this regardless of how
// aggressive the goal adjustment is for a small-BMR profile.
const minCalories = 1200

// classificationRule maps substring markers in a free-form field to a value.
// Rules are evaluated in declaration order; first match wins.
type classificationRule struct {
	markers []string
	value   float64
}

// activityRules classifies fitnessExperience into an activity multiplier.
var activityRules = []classificationRule{
	{markers: []string{"expert", "5+"}, value: 1.9},
	{markers: []string{"advanced", "2+"}, value: 1.725},
	{markers: []string{"intermediate"}, value: 1.55},
	{markers: []string{"beginner", "0-6"}, value: 1.375},
}

const defaultActivityMultiplier = 1.5

// goalRules classifies fitnessGoals into a calorie adjustment fraction.
// "weight loss" needs both words, so it is matched separately below.
var goalRules = []classificationRule{
	{markers: []string{"muscle", "gain", "strength"}, value: 0.12},
	{markers: []string{"endurance"}, value: 0.05},
	{markers: []string{"rehab"}, value: -0.05},
}

// proteinRules classifies fitnessGoals into protein grams per kg bodyweight.
var proteinRules = []classificationRule{
	{markers: []string{"loss"}, value: 2.0},
	{markers: []string{"muscle", "strength"}, value: 1.8},
}

const defaultProteinPerKg = 1.6

func classify(field string, rules []classificationRule, fallback float64) float64 {
	lowered := strings.ToLower(field)
	for _, rule := range rules {
		for _, marker := range rule.markers {
			if strings.Contains(lowered, marker) {
				return rule.value
			}
		}
	}
	return fallback
}

// mifflinStJeor estimates BMR in kcal/day. Anything other than "male"
// (case-insensitive) uses the female/other constant.
func mifflinStJeor(sex string, weightKg, heightCm, ageYears float64) float64 {
	base := 10*weightKg + 6.25*heightCm - 5*ageYears
	if strings.ToLower(sex) == "male" {
		return base + 5
	}
	return base - 161
}

func goalAdjustment(goal string) float64 {
	g := strings.ToLower(goal)
	if strings.Contains(g, "weight") && strings.Contains(g, "loss") {
		return -0.20
	}
	return classify(goal, goalRules, 0.0)
}

// ComputeTargets derives daily nutrition targets from a profile. Pure and
// deterministic; it never fails because all inputs were already coerced to
// numbers upstream.
//
// Carbs are computed as the exact kcal remainder after protein and fat, so
// proteinG*4 + fatG*9 + carbsG*4 == targetCalories whenever that remainder
// is positive. When protein and fat alone exceed the calorie target the
// remainder clamps to 0 and the identity intentionally does not hold.
// Macros are computed against the floor-clamped calorie target.
func ComputeTargets(p UserProfile) NutritionTargets {
	bmr := mifflinStJeor(p.BiologicalSex, p.WeightKg, p.HeightCm, p.Age)
	tdee := int(math.Round(bmr * classify(p.FitnessExperience, activityRules, defaultActivityMultiplier)))

	adj := goalAdjustment(p.FitnessGoals)
	target := int(math.Round(float64(tdee) * (1 + adj)))
	if target < minCalories {
		target = minCalories
	}

	proteinG := int(math.Round(classify(p.FitnessGoals, proteinRules, defaultProteinPerKg) * p.WeightKg))
	fatG := int(math.Round(0.8 * p.WeightKg))

	remainder := float64(target-proteinG*4-fatG*9) / 4
	carbsG := int(math.Round(remainder))
	if carbsG < 0 {
		carbsG = 0
	}

	return NutritionTargets{
		BMR:            bmr,
		TDEE:           tdee,
		TargetCalories: target,
		ProteinG:       proteinG,
		CarbsG:         carbsG,
		FatG:           fatG,
	}
}

// GoalAdjustmentPercent exposes the adjustment as a rounded percentage for
// display inside the prompt.
func GoalAdjustmentPercent(goal string) int {
	return int(math.Round(goalAdjustment(goal) * 100))
}
