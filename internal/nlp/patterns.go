package nlp

import (
	"regexp"

	"github.com/BerylCAtieno/digital-twin-agent/internal/models"
)

// agePatterns are tried in order; the first match wins.
var agePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(\d{1,3})[\s-]*(?:years?|yrs?)(?:[\s-]*old)?\b`),
	regexp.MustCompile(`(?i)\bage(?:\s*:)?\s*(\d{1,3})\b`),
}

var statePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(alabama|alaska|arizona|arkansas|california|colorado|connecticut|delaware|florida|georgia|hawaii|idaho|illinois|indiana|iowa|kansas|kentucky|louisiana|maine|maryland|massachusetts|michigan|minnesota|mississippi|missouri|montana|nebraska|nevada|new\s+hampshire|new\s+jersey|new\s+mexico|new\s+york|north\s+carolina|north\s+dakota|ohio|oklahoma|oregon|pennsylvania|rhode\s+island|south\s+carolina|south\s+dakota|tennessee|texas|utah|vermont|virginia|washington|west\s+virginia|wisconsin|wyoming)\b`),
	regexp.MustCompile(`\b(AL|AK|AZ|AR|CA|CO|CT|DE|FL|GA|HI|ID|IL|IN|IA|KS|KY|LA|ME|MD|MA|MI|MN|MS|MO|MT|NE|NV|NH|NJ|NM|NY|NC|ND|OH|OK|OR|PA|RI|SC|SD|TN|TX|UT|VT|VA|WA|WV|WI|WY)\b`),
}

// Group 1 is the amount, group 2 the optional magnitude suffix.
var incomePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:earn|make|income|salary)\s*(?:of|:)?\s*\$?(\d+(?:,\d{3})*(?:\.\d{2})?)(?:\s*(k|thousand|million|m)\b)?`),
	regexp.MustCompile(`(?i)\$(\d+(?:,\d{3})*(?:\.\d{2})?)(?:\s*(k|thousand|million|m)\b)?(?:\s*(?:per|a|/)\s*(?:year|yr|annually))?`),
}

type keywordGroup struct {
	value    string
	keywords []string
}

// Keyword tables are ordered; ties go to the earlier entry.
var maritalKeywords = []keywordGroup{
	{"single", []string{"single", "never married", "bachelor", "unmarried", "no wife", "no husband"}},
	{"married", []string{"married", "wife", "husband", "spouse"}},
	{"divorced", []string{"divorced", "separated", "ex-wife", "ex-husband"}},
	{"widowed", []string{"widowed", "widow", "widower"}},
	{"separated", []string{"separated"}},
}

var educationKeywords = []keywordGroup{
	{models.EducationLessThanHighSchool, []string{"dropout", "no diploma", "no degree", "elementary", "middle school"}},
	{models.EducationHighSchool, []string{"high school", "hs diploma", "ged"}},
	{models.EducationSomeCollege, []string{"some college", "associate", "trade school", "vocational"}},
	{models.EducationBachelors, []string{"bachelor", "college", "university", "undergrad"}},
	{models.EducationMasters, []string{"master", "graduate", "phd", "doctorate", "professional degree"}},
}
