package planner

import (
	"fmt"
	"math"
	"strings"
)

/* =================================================================================
							PROMPT TEMPLATES
	These fix the structure the generation service is asked to produce. The
	computed targets are inlined and labeled so the model is constrained to
	match them instead of inventing its own numbers.
=================================================================================*/

const planStructureTemplate = `Provide a detailed 7-day plan that includes:
1) Daily WORKOUTS:
   - 45–70 min session outline with warm-up, main sets, and cool-down.
   - For each exercise: movement name, sets × reps, rest time, and simple coaching cue.
   - Provide a no-equipment substitution for each exercise when possible.
   - Include 1–2 progression ideas for the week.
2) Daily DIET:
   - 3 meals + 2 snacks per day (or culturally appropriate pattern) with portion sizes.
   - Per-day macro breakdown (g protein/carbs/fats) that matches the personalized targets above.
   - Give at least one substitution per meal to handle dietary restrictions.
   - Add 1 quick recipe idea per day with brief steps (3–5 steps).
3) HYDRATION: daily goal and practical tip.
4) REST/RECOVERY: mobility or light activity suggestions where appropriate.
5) SHOPPING LIST: consolidated weekly grocery list grouped by category (protein, carbs, produce, pantry, dairy/alternatives) filtered for any dietary restrictions.
6) SAFETY NOTES: brief and relevant to the user's metrics.

Format clearly with headings per day (Day 1 … Day 7), then subsections: Workouts, Diet (with Meals/Snacks), Hydration, Recovery. Keep within ~800 words total.
Be concise but descriptive so the user can follow the plan without ambiguity.`

const conciseInstruction = `

CONCISE MODE: Keep the entire 7-day plan within 500–700 words total. Use short bullet points. Avoid long recipes; give one-liner tips instead. If needed, prioritize clarity over volume.`

// BuildPlanPrompt assembles the full instruction block from the profile and
// its computed targets. Pure; never fails.
func BuildPlanPrompt(p UserProfile, t NutritionTargets) string {
	var b strings.Builder

	b.WriteString("Create a personalized 7-day fitness and diet plan based on the following user information (be concise; hard limit ~800 words total):\n")
	fmt.Fprintf(&b, "- Age: %s\n", trimFloat(p.Age))
	fmt.Fprintf(&b, "- Biological Sex: %s\n", p.BiologicalSex)
	fmt.Fprintf(&b, "- Height: %s cm\n", trimFloat(p.HeightCm))
	fmt.Fprintf(&b, "- Weight: %s kg\n", trimFloat(p.WeightKg))
	fmt.Fprintf(&b, "- Fitness Experience: %s\n", p.FitnessExperience)
	fmt.Fprintf(&b, "- Dietary Restrictions: %s\n", orNone(p.DietaryRestrictions))
	fmt.Fprintf(&b, "- Fitness Goals: %s\n", p.FitnessGoals)

	if p.OxygenSaturation != "" {
		fmt.Fprintf(&b, "- Oxygen Saturation: %s%%\n", p.OxygenSaturation)
	}
	if p.BloodPressure != "" {
		fmt.Fprintf(&b, "- Blood Pressure: %s\n", p.BloodPressure)
	}
	if p.WaterIntake != "" {
		fmt.Fprintf(&b, "- Daily Water Intake: %sL\n", p.WaterIntake)
	}
	if p.CalorieIntake != "" {
		fmt.Fprintf(&b, "- Daily Calorie Intake: %s kcal\n", p.CalorieIntake)
	}

	b.WriteString("\nPERSONALIZED TARGETS (adhere strictly):\n")
	fmt.Fprintf(&b, "- Daily Calories: %d kcal (based on BMR %d and TDEE %d with goal adjustment %d%%)\n",
		t.TargetCalories, int(math.Round(t.BMR)), t.TDEE, GoalAdjustmentPercent(p.FitnessGoals))
	fmt.Fprintf(&b, "- Macros per day: Protein %d g, Carbs %d g, Fats %d g\n\n", t.ProteinG, t.CarbsG, t.FatG)

	b.WriteString(planStructureTemplate)

	return b.String()
}

// BuildConcisePrompt is the standard prompt plus an explicit word budget.
func BuildConcisePrompt(p UserProfile, t NutritionTargets) string {
	return BuildPlanPrompt(p, t) + conciseInstruction
}

// BuildSummaryPrompt asks for the short bullet condensation of a plan.
func BuildSummaryPrompt(planText string) string {
	return "Summarize the following 7-day fitness & diet plan into 6-8 short bullet points. " +
		"Include: goals, daily calories & macros, weekly workout focus, dietary highlights/substitutions, " +
		"hydration, recovery, safety notes. Keep it under 120 words.\n\nPLAN:\n" + planText
}

func orNone(s string) string {
	if s == "" {
		return "None"
	}
	return s
}

// trimFloat renders a coerced numeric field the way the user typed it
// (no trailing ".000000" noise for whole numbers).
func trimFloat(f float64) string {
	if f == math.Trunc(f) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}
