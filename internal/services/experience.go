package services

import (
	"regexp"
	"strconv"
	"strings"
)

// ExperienceService extracts the maximum asserted years-of-experience figure
// from raw resume text. A resume stating several figures (per role, per
// stack) is credited with its highest claim.
type ExperienceService interface {
	ExtractExperience(rawText string) int
}

type experienceService struct {
	patterns []*regexp.Regexp
}

// The patterns run over lowercased raw text and tolerate a trailing "+"
// ("5+ years") and the usual year/yr spelling variants.
var experiencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d{1,2})\s*\+?\s*(?:years?|yrs?)\s+(?:of\s+)?experience`),
	regexp.MustCompile(`experience\s+of\s+(\d{1,2})\s*\+?\s*(?:years?|yrs?)`),
	regexp.MustCompile(`(\d{1,2})\s*\+?\s*(?:years?|yrs?)\s+in\b`),
	regexp.MustCompile(`worked\s+for\s+(\d{1,2})\s*\+?\s*(?:years?|yrs?)`),
}

func NewExperienceService() ExperienceService {
	return &experienceService{patterns: experiencePatterns}
}

// ExtractExperience collects every match across every pattern and returns
// the maximum integer found, or 0 when nothing matches.
func (e *experienceService) ExtractExperience(rawText string) int {
	text := strings.ToLower(rawText)

	maxYears := 0
	for _, pattern := range e.patterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			years, err := strconv.Atoi(match[1])
			if err != nil {
				continue
			}
			if years > maxYears {
				maxYears = years
			}
		}
	}
	return maxYears
}
