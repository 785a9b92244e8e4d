package twin

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// Markdown renders the report for chat clients.
func (r *Report) Markdown() string {
	var b strings.Builder
	p := r.Profile

	b.WriteString("# Digital Twin Report\n\n")
	b.WriteString("## Profile\n\n")
	fmt.Fprintf(&b, "- **Age:** %d\n", p.Age)
	fmt.Fprintf(&b, "- **Income:** %s\n", dollars(p.Income))
	fmt.Fprintf(&b, "- **Education:** %s\n", p.Education)
	if p.Occupation != "" {
		fmt.Fprintf(&b, "- **Occupation:** %s\n", p.Occupation)
	}
	if loc := location(p.Location.City, p.Location.State); loc != "" {
		fmt.Fprintf(&b, "- **Location:** %s\n", loc)
	}
	fmt.Fprintf(&b, "- **Household Size:** %d\n", p.HouseholdSize)
	fmt.Fprintf(&b, "- **Marital Status:** %s\n", p.MaritalStatus)

	b.WriteString("\n## Demographic Insights\n\n")
	for _, line := range r.Insights.Lines() {
		fmt.Fprintf(&b, "- %s\n", line.Text)
	}

	b.WriteString("\n## Persona\n\n")
	writeList(&b, "Lifestyle", r.Persona.Lifestyle)
	writeList(&b, "Interests", r.Persona.Interests)
	writeList(&b, "Financial Goals", r.Persona.FinancialGoals)
	writeList(&b, "Challenges", r.Persona.Challenges)
	writeList(&b, "Opportunities", r.Persona.Opportunities)

	if len(r.Persona.SpendingHabits) > 0 {
		b.WriteString("\n### Spending\n\n| Category | Share | Annual |\n|---|---|---|\n")
		for _, h := range r.Persona.SpendingHabits {
			fmt.Fprintf(&b, "| %s | %s%% | %s |\n", h.Category, strconv.FormatFloat(h.Percentage, 'f', -1, 64), dollars(h.Amount(p.Income)))
		}
	}

	if r.Summary != "" {
		b.WriteString("\n## Advisor Summary\n\n")
		b.WriteString(strings.TrimSpace(r.Summary))
		b.WriteString("\n")
	}

	return b.String()
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "**%s:** %s\n\n", title, strings.Join(items, ", "))
}

func location(city, state string) string {
	switch {
	case city != "" && state != "":
		return city + ", " + state
	case state != "":
		return state
	default:
		return city
	}
}

func dollars(v float64) string {
	return printer.Sprintf("$%d", int64(math.Round(v)))
}
