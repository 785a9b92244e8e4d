package profiler

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/BerylCAtieno/digital-twin-agent/internal/models"
)

const insightsSystemPrompt = `You are a financial advisor and demographic analyst. Analyze the provided description and demographic data to generate insights about the digital twin. Focus on:
1. Financial Profile: Current financial status, income sources, and potential concerns
2. Risk Factors: Identify potential financial, lifestyle, or demographic risks
3. Opportunities: Areas for improvement or optimization
4. Behavioral Insights: Likely financial behaviors and decision-making patterns
5. Recommendations: Actionable steps for financial planning and lifestyle optimization

Keep responses concise but insightful. Use bullet points for clarity.`

const priceSystemPrompt = `You are an expert pricing analyst with deep knowledge of market dynamics, consumer behavior, and demographic analysis. Your task is to analyze product pricing based on demographic data and product details.

Consider the following factors in your analysis:
1. Demographic spending patterns and financial capacity
2. Market conditions and competitive landscape
3. Product category trends and seasonality
4. Price elasticity of demand
5. Value perception and brand positioning
6. Purchase likelihood and conversion factors

Format your response as a JSON object with the following structure:
{
  "recommendedPrice": {"min": number, "max": number, "optimal": number},
  "marketAnalysis": {"competitiveLandscape": string, "marketTrends": string, "seasonalFactors": string},
  "demographicFit": {"spendingCapacity": string, "priceElasticity": string, "valuePerception": string, "purchaseLikelihood": string},
  "visualizations": {
    "priceDistribution": {"prices": number[], "probabilities": number[]},
    "sensitivityCurve": {"prices": number[], "demand": number[]}
  },
  "recommendations": string[]
}`

const socialGraphSystemPrompt = `You are an expert in social network analysis and word-of-mouth marketing.
Generate a detailed social graph and recommendations based on demographic data.
Focus on roles and personas that would be in the person's social network, NOT arbitrary names.

For example, for a college student, nodes might include:
- Primary: "Study Group Peer", "Roommate", "Academic Advisor"
- Secondary: "Department Head", "Club Member", "Teaching Assistant"
- Tertiary: "Alumni Network", "Campus Staff", "Industry Mentor"

The response should be a valid JSON object with this exact schema:
{
  "socialGraph": {
    "nodes": [{"id": string, "label": string, "type": "primary" | "secondary" | "tertiary", "influence": number (1-10), "category": string, "description": string}],
    "edges": [{"source": string, "target": string, "strength": number (1-10), "type": "frequent" | "occasional" | "rare", "context": string}]
  },
  "recommendations": {
    "networkGrowth": string[],
    "influencerStrategy": string[],
    "contentStrategy": string[],
    "channelStrategy": string[],
    "engagementTactics": string[]
  },
  "metrics": {
    "networkSize": number,
    "avgInfluence": number,
    "keyConnectors": string[],
    "reachPotential": number,
    "virality": number
  }
}`

const socialGraphTask = "Generate a role-based social graph and word-of-mouth marketing recommendations based on the demographic profile. Focus on professional, academic, social, and family roles that would be in their network."

const dayInLifeSystemPrompt = `You are an expert analyst generating a detailed lifestyle analysis based on demographic data.
Generate a comprehensive analysis including:
1. A markdown-formatted daily schedule
2. Marketing insights (shopping habits, brand preferences, price points, media consumption, decision factors)
3. Financial insights (daily spending patterns, payment methods, financial goals, investment style, risk tolerance)
4. Location insights (frequented locations, commute patterns, neighborhood preferences)

Format the response as a JSON object with these exact keys:
{
  "schedule": "markdown string",
  "marketingInsights": {
    "shoppingHabits": string[],
    "brandPreferences": string[],
    "pricePoints": { "category": string, "range": string }[],
    "mediaConsumption": string[],
    "decisionFactors": string[]
  },
  "financialInsights": {
    "dailySpending": { "category": string, "amount": number }[],
    "paymentMethods": string[],
    "financialGoals": string[],
    "investmentStyle": string,
    "riskTolerance": string
  },
  "locationInsights": {
    "frequentedLocations": { "type": string, "examples": string[] }[],
    "commutePatterns": string[],
    "neighborhoodPreferences": string[]
  }
}`

const comparisonSystemPrompt = `You are an expert analyst generating comparison data between different financial metrics.
Generate comprehensive comparison data including:
1. X and Y axis data points (arrays of numbers)
2. Labels for each data point
3. Axis titles and chart title
4. Trendline data points
5. Analysis points about the relationship

Format the response as a JSON object with these exact keys:
{
  "x": number[],
  "y": number[],
  "labels": string[],
  "xTitle": string,
  "yTitle": string,
  "title": string,
  "trendline": {"x": number[], "y": number[]},
  "analysis": string[]
}`

const correlationSystemPrompt = `You are an expert analyst generating correlation insights between different financial and demographic metrics.
Generate comprehensive correlation data including:
1. X and Y axis data points (arrays of numbers)
2. Labels for each data point
3. Axis titles and chart title
4. Key insights about the correlation

Format the response as a JSON object with these exact keys:
{
  "x": number[],
  "y": number[],
  "labels": string[],
  "xTitle": string,
  "yTitle": string,
  "title": string,
  "insights": string[]
}`

const extractSystemPrompt = `You extract demographic information from natural language descriptions.
Return a JSON object with exactly these fields:
{
  "age": number,
  "income": number,
  "location": {"state": string, "city": string, "zipCode": string},
  "education": "Less than High School" | "High School" | "Some College" | "Bachelor's Degree" | "Master's Degree" | "Doctoral Degree",
  "occupation": string,
  "householdSize": number,
  "maritalStatus": "Single" | "Married" | "Divorced" | "Widowed" | "Separated"
}
If any information is missing, make reasonable assumptions based on the provided context.
Ensure all fields are filled with valid values.`

// Correlation analysis types.
const (
	CorrelationSpendingVsMarket  = "spending_vs_market"
	CorrelationIncomeVsSpending  = "income_vs_spending"
	CorrelationPortfolioVsRisk   = "portfolio_vs_risk"
	CorrelationLocationVsFinance = "location_vs_finance"
)

var CorrelationTypes = []string{
	CorrelationSpendingVsMarket,
	CorrelationIncomeVsSpending,
	CorrelationPortfolioVsRisk,
	CorrelationLocationVsFinance,
}

func insightsPrompt(description string, profile models.DemographicProfile) Prompt {
	data, _ := json.MarshalIndent(profile, "", "  ")
	return Prompt{
		System: insightsSystemPrompt,
		User:   fmt.Sprintf("Description: %s\n\nDemographic Data: %s", description, data),
	}
}

func pricePrompt(profile models.DemographicProfile, product models.Product) Prompt {
	competitors := make([]string, 0, len(product.CompetitorPrices))
	for _, p := range product.CompetitorPrices {
		competitors = append(competitors, "$"+formatNumber(p))
	}

	user := fmt.Sprintf(`Analyze pricing for the following product:

Product Name: %s
Category: %s
Description: %s
Target Price: $%s
Features: %s
Competitor Prices: %s

Target Demographic:
- Age: %d
- Income: $%s
- Occupation: %s
- Education: %s
- Location: %s, %s
- Household Size: %d
- Marital Status: %s

Provide a comprehensive pricing analysis considering the demographic profile, market conditions, and competitive landscape.`,
		product.Name, product.Category, product.Description, formatNumber(product.TargetPrice),
		strings.Join(product.Features, ", "), strings.Join(competitors, ", "),
		profile.Age, formatNumber(profile.Income), profile.Occupation, profile.Education,
		profile.Location.City, profile.Location.State, profile.HouseholdSize, profile.MaritalStatus)

	return Prompt{System: priceSystemPrompt, User: user, JSON: true}
}

func socialGraphPrompt(profile models.DemographicProfile) Prompt {
	data, _ := json.Marshal(struct {
		Task         string                    `json:"task"`
		Demographics models.DemographicProfile `json:"demographics"`
	}{socialGraphTask, profile})
	return Prompt{System: socialGraphSystemPrompt, User: string(data), JSON: true}
}

func dayInLifePrompt(profile models.DemographicProfile) Prompt {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate a lifestyle analysis for a %d year old %s in %s", profile.Age, profile.Occupation, profile.Location.State)
	if profile.Location.City != "" {
		fmt.Fprintf(&b, ", %s", profile.Location.City)
	}
	fmt.Fprintf(&b, " with an income of $%s and %s education.", formatNumber(profile.Income), profile.Education)
	if profile.MaritalStatus != "" {
		fmt.Fprintf(&b, " They are %s.", profile.MaritalStatus)
	}
	return Prompt{System: dayInLifeSystemPrompt, User: b.String(), JSON: true}
}

func comparisonPrompt(profile models.DemographicProfile, xMetric, yMetric string) Prompt {
	user := fmt.Sprintf(`Generate comparison data between %s and %s for a %d year old %s with an income of $%s in %s.
Consider their education level (%s) and marital status (%s) when generating the data points and analysis.

The data should reflect realistic patterns and relationships between these metrics based on the demographic profile.
Include at least 10 data points and a meaningful trendline that shows the relationship between the metrics.

The analysis should focus on:
1. The strength and direction of the relationship
2. Any notable patterns or clusters
3. Demographic-specific insights
4. Potential implications for financial planning`,
		xMetric, yMetric, profile.Age, profile.Occupation, formatNumber(profile.Income), profile.Location.State,
		profile.Education, profile.MaritalStatus)
	return Prompt{System: comparisonSystemPrompt, User: user, JSON: true}
}

func correlationPrompt(profile models.DemographicProfile, kind string) (Prompt, error) {
	var user string
	switch kind {
	case CorrelationSpendingVsMarket:
		user = fmt.Sprintf("Analyze how market conditions affect spending patterns for a %d year old %s with an income of $%s. Generate correlation data between market volatility and spending in different categories.",
			profile.Age, profile.Occupation, formatNumber(profile.Income))
	case CorrelationIncomeVsSpending:
		user = fmt.Sprintf("Analyze the relationship between income levels and spending patterns for someone in %s with %s education. Generate correlation data showing how spending in different categories changes with income.",
			profile.Location.State, profile.Education)
	case CorrelationPortfolioVsRisk:
		user = fmt.Sprintf("Analyze how portfolio allocation correlates with risk factors for a %s %d year old with %s education. Generate correlation data between risk metrics and portfolio performance.",
			strings.ToLower(profile.MaritalStatus), profile.Age, profile.Education)
	case CorrelationLocationVsFinance:
		user = fmt.Sprintf("Analyze how location affects financial decisions for someone with an income of $%s and %s education. Generate correlation data between location-based metrics and financial choices.",
			formatNumber(profile.Income), profile.Education)
	default:
		return Prompt{}, fmt.Errorf("%w: %q", ErrInvalidCorrelationType, kind)
	}
	return Prompt{System: correlationSystemPrompt, User: user, JSON: true}, nil
}

func extractPrompt(text string) Prompt {
	return Prompt{System: extractSystemPrompt, User: text, JSON: true}
}

// formatNumber prints whole numbers without a decimal part.
func formatNumber(v float64) string {
	return strings.TrimSuffix(fmt.Sprintf("%.2f", v), ".00")
}
