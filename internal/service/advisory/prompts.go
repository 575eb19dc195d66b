package advisory

import (
	"fmt"
	"strings"

	"github.com/mamadbah2/feedration/internal/domain/models"
	"github.com/mamadbah2/feedration/internal/ration"
)

func advicePrompt(req AdviceRequest) string {
	var sb strings.Builder

	sb.WriteString("Analyse the following daily ration in detail.\n\n")
	writeProfile(&sb, req.Profile, req.BreedName)

	sb.WriteString("\nCURRENT MIXTURE (fresh weight):\n")
	for _, item := range req.Ration {
		fmt.Fprintf(&sb, "- %s: %.2f kg\n", feedName(req.Feeds, item.FeedID), item.AmountKg)
	}

	t, r := req.Totals, req.Requirements
	sb.WriteString("\nNUTRIENT SUPPLY (current / required):\n")
	fmt.Fprintf(&sb, "- Dry matter: %.2f / %.2f kg\n", t.DryMatterKg, r.DryMatterIntakeKg)
	fmt.Fprintf(&sb, "- Metabolizable energy: %.2f / %.2f MJ\n", t.EnergyMJ, r.EnergyMJ)
	fmt.Fprintf(&sb, "- Crude protein: %.2f / %.2f g\n", t.ProteinG, r.ProteinG)
	fmt.Fprintf(&sb, "- Calcium: %.2f / %.2f g\n", t.CalciumG, r.CalciumG)
	fmt.Fprintf(&sb, "- Phosphorus: %.2f / %.2f g\n", t.PhosphorusG, r.PhosphorusG)
	fmt.Fprintf(&sb, "- Magnesium: %.2f / %.2f g\n", t.MagnesiumG, r.MagnesiumG)

	sb.WriteString("\nTASKS:\n")
	sb.WriteString("1. Assess the balance of the ration.\n")
	sb.WriteString("2. Explain how the ration score can be brought to 100%.\n")
	sb.WriteString("3. Recommend concrete changes that remove the shortfalls and excesses.\n")
	sb.WriteString("Answer in a professional, constructive tone.")
	return sb.String()
}

func optimizePrompt(req OptimizeRequest) string {
	var sb strings.Builder

	sb.WriteString("You are a ration optimization engine. Set daily amounts using only the feeds listed.\n")
	writeProfile(&sb, req.Profile, req.BreedName)

	r := req.Requirements
	fmt.Fprintf(&sb, "\nTARGETS: dry matter %.2f kg, energy %.2f MJ, protein %.2f g\n",
		r.DryMatterIntakeKg, r.EnergyMJ, r.ProteinG)

	sb.WriteString("\nFEEDS:\n")
	for _, item := range req.Ration {
		f, ok := req.Feeds.Feed(item.FeedID)
		if !ok {
			continue
		}
		fmt.Fprintf(&sb, "%s: %s (DM %.1f%%, ME %.1f MJ/kg DM, CP %.1f%%)\n",
			f.ID, f.Name, f.DryMatterPercent, f.MetabolizableEnergy, f.CrudeProtein)
	}

	if ceiling, ok := ration.FreshWeightCeiling(req.Profile.Category); ok {
		fmt.Fprintf(&sb, "\nIMPORTANT: the total fresh weight of all feeds must not exceed %.1f kg.\n", ceiling)
	}

	sb.WriteString(`
Reply with a JSON object only: {"items": [{"feedId": "id", "amountKg": positive_number}]}`)
	return sb.String()
}

func pricesPrompt(feeds []models.Feed) string {
	var sb strings.Builder
	sb.WriteString("Look up current wholesale feed prices per kg in the Turkish market.\n")
	sb.WriteString("Reply with a JSON object only, mapping each feed id to a number: {\"feed_id\": price}.\n\nFEEDS:\n")
	for _, f := range feeds {
		fmt.Fprintf(&sb, "%s: %s\n", f.ID, f.Name)
	}
	return sb.String()
}

func writeProfile(sb *strings.Builder, p models.AnimalProfile, breedName string) {
	sb.WriteString("ANIMAL PROFILE:\n")
	fmt.Fprintf(sb, "- Species: %s\n", p.Category)
	fmt.Fprintf(sb, "- Breed: %s\n", breedName)
	fmt.Fprintf(sb, "- Live weight: %.1f kg\n", p.LiveWeightKg)
	fmt.Fprintf(sb, "- Target daily gain: %.2f kg\n", p.DailyGainKg)
	if p.AgeMonths > 0 {
		fmt.Fprintf(sb, "- Age: %d months\n", p.AgeMonths)
	}
}

func feedName(feeds ration.FeedLookup, id string) string {
	if feeds != nil {
		if f, ok := feeds.Feed(id); ok {
			return f.Name
		}
	}
	return id
}

// extractJSON returns the outermost JSON object in text, dropping markdown fences
// and any prose around it.
func extractJSON(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return "", false
	}
	return text[start : end+1], true
}
