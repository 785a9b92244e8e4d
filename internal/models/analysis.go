package models

type Product struct {
	Name             string    `json:"name"`
	Category         string    `json:"category"`
	Description      string    `json:"description"`
	TargetPrice      float64   `json:"targetPrice"`
	Features         []string  `json:"features"`
	CompetitorPrices []float64 `json:"competitorPrices"`
}

type PriceRange struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Optimal float64 `json:"optimal"`
}

type MarketAnalysis struct {
	CompetitiveLandscape string `json:"competitiveLandscape"`
	MarketTrends         string `json:"marketTrends"`
	SeasonalFactors      string `json:"seasonalFactors"`
}

type DemographicFit struct {
	SpendingCapacity   string `json:"spendingCapacity"`
	PriceElasticity    string `json:"priceElasticity"`
	ValuePerception    string `json:"valuePerception"`
	PurchaseLikelihood string `json:"purchaseLikelihood"`
}

type PriceDistribution struct {
	Prices        []float64 `json:"prices"`
	Probabilities []float64 `json:"probabilities"`
}

type SensitivityCurve struct {
	Prices []float64 `json:"prices"`
	Demand []float64 `json:"demand"`
}

type PriceVisualizations struct {
	PriceDistribution PriceDistribution `json:"priceDistribution"`
	SensitivityCurve  SensitivityCurve  `json:"sensitivityCurve"`
}

type PriceAnalysis struct {
	RecommendedPrice PriceRange          `json:"recommendedPrice"`
	MarketAnalysis   MarketAnalysis      `json:"marketAnalysis"`
	DemographicFit   DemographicFit      `json:"demographicFit"`
	Visualizations   PriceVisualizations `json:"visualizations"`
	Recommendations  []string            `json:"recommendations"`
}

type SocialNode struct {
	ID          string  `json:"id"`
	Label       string  `json:"label"`
	Type        string  `json:"type"`
	Influence   float64 `json:"influence"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
}

type SocialEdge struct {
	Source   string  `json:"source"`
	Target   string  `json:"target"`
	Strength float64 `json:"strength"`
	Type     string  `json:"type"`
	Context  string  `json:"context"`
}

type SocialGraph struct {
	Nodes []SocialNode `json:"nodes"`
	Edges []SocialEdge `json:"edges"`
}

type NetworkRecommendations struct {
	NetworkGrowth      []string `json:"networkGrowth"`
	InfluencerStrategy []string `json:"influencerStrategy"`
	ContentStrategy    []string `json:"contentStrategy"`
	ChannelStrategy    []string `json:"channelStrategy"`
	EngagementTactics  []string `json:"engagementTactics"`
}

type NetworkMetrics struct {
	NetworkSize    float64  `json:"networkSize"`
	AvgInfluence   float64  `json:"avgInfluence"`
	KeyConnectors  []string `json:"keyConnectors"`
	ReachPotential float64  `json:"reachPotential"`
	Virality       float64  `json:"virality"`
}

type SocialGraphAnalysis struct {
	SocialGraph     SocialGraph            `json:"socialGraph"`
	Recommendations NetworkRecommendations `json:"recommendations"`
	Metrics         NetworkMetrics         `json:"metrics"`
}

type CategoryRange struct {
	Category string `json:"category"`
	Range    string `json:"range"`
}

type CategoryAmount struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

type MarketingInsights struct {
	ShoppingHabits   []string        `json:"shoppingHabits"`
	BrandPreferences []string        `json:"brandPreferences"`
	PricePoints      []CategoryRange `json:"pricePoints"`
	MediaConsumption []string        `json:"mediaConsumption"`
	DecisionFactors  []string        `json:"decisionFactors"`
}

type FinancialInsights struct {
	DailySpending   []CategoryAmount `json:"dailySpending"`
	PaymentMethods  []string         `json:"paymentMethods"`
	FinancialGoals  []string         `json:"financialGoals"`
	InvestmentStyle string           `json:"investmentStyle"`
	RiskTolerance   string           `json:"riskTolerance"`
}

type FrequentedLocation struct {
	Type     string   `json:"type"`
	Examples []string `json:"examples"`
}

type LocationInsights struct {
	FrequentedLocations     []FrequentedLocation `json:"frequentedLocations"`
	CommutePatterns         []string             `json:"commutePatterns"`
	NeighborhoodPreferences []string             `json:"neighborhoodPreferences"`
}

// LifestyleAnalysis is the day-in-the-life report. Schedule is markdown.
type LifestyleAnalysis struct {
	Schedule          string            `json:"schedule"`
	MarketingInsights MarketingInsights `json:"marketingInsights"`
	FinancialInsights FinancialInsights `json:"financialInsights"`
	LocationInsights  LocationInsights  `json:"locationInsights"`
}

type Trendline struct {
	X []float64 `json:"x"`
	Y []float64 `json:"y"`
}

type ComparisonData struct {
	X         []float64 `json:"x"`
	Y         []float64 `json:"y"`
	Labels    []string  `json:"labels"`
	XTitle    string    `json:"xTitle"`
	YTitle    string    `json:"yTitle"`
	Title     string    `json:"title"`
	Trendline Trendline `json:"trendline"`
	Analysis  []string  `json:"analysis"`
}

type CorrelationData struct {
	X        []float64 `json:"x"`
	Y        []float64 `json:"y"`
	Labels   []string  `json:"labels"`
	XTitle   string    `json:"xTitle"`
	YTitle   string    `json:"yTitle"`
	Title    string    `json:"title"`
	Insights []string  `json:"insights"`
}
