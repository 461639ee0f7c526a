package planner

import (
	"fmt"
	"strings"
)

/* =================================================================================
						DETERMINISTIC FALLBACKS
	Network-free plan and summary synthesis. These are the resilience layer:
	when a generation call fails in concise mode the request still returns a
	usable plan, and a summary is always present once a plan exists.
=================================================================================*/

// SynthesizeFallbackPlan builds a generic 7-day plan around the computed
// targets and dietary restrictions. Pure; never fails.
func SynthesizeFallbackPlan(p UserProfile, t NutritionTargets) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Personalized Targets\n- Calories: %d kcal\n- Macros: Protein %d g, Carbs %d g, Fats %d g\nDietary Restrictions: %s\n\n",
		t.TargetCalories, t.ProteinG, t.CarbsG, t.FatG, orNone(p.DietaryRestrictions))

	for day := 1; day <= 7; day++ {
		fmt.Fprintf(&b, "Day %d\n", day)
		b.WriteString("Workouts: 45–60 min mixed (push/pull/legs/cardio). Choose 4–5 moves, 3×8–12 reps, 60–90s rest. No equipment? Do push-ups, squats, lunges, rows (towel/doorframe), planks.\n")
		fmt.Fprintf(&b, "Diet (approx %d kcal | P%d/C%d/F%d):\n", t.TargetCalories, t.ProteinG, t.CarbsG, t.FatG)
		b.WriteString("- Breakfast: Greek yogurt + berries + oats.\n")
		b.WriteString("- Lunch: Grain bowl (rice/quinoa), tofu/beans/chicken, veggies, olive oil.\n")
		b.WriteString("- Snack: Fruit + nuts.\n")
		b.WriteString("- Dinner: Lean protein, roasted veg, potatoes/rice.\n")
		b.WriteString("- Snack: Cottage cheese or protein shake.\n")
		b.WriteString("Hydration: 2–3L water. Recovery: 10 min mobility.\n\n")
	}

	return b.String()
}

// HeuristicSummary composes the bullet summary entirely from already-known
// values. Used whenever the summarizer call fails; never fails itself.
func HeuristicSummary(p UserProfile, t NutritionTargets) string {
	restrictions := p.DietaryRestrictions
	if restrictions == "" {
		restrictions = "No major restrictions"
	}

	return fmt.Sprintf(
		"Key Points\n"+
			"- Daily target: %d kcal | Macros P%d/C%d/F%d\n"+
			"- Goal: %s\n"+
			"- Experience: %s\n"+
			"- Diet: %s\n"+
			"- Hydration: 2–3L/day; Recovery: light mobility daily\n"+
			"- Safety: respect pain, scale loads, consult a professional for BP/SpO2 concerns",
		t.TargetCalories, t.ProteinG, t.CarbsG, t.FatG,
		p.FitnessGoals, p.FitnessExperience, restrictions,
	)
}
