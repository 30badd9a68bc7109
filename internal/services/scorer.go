package services

import (
	"fmt"
	"math"
	"strings"

	"resumeshortlist/internal/models"
)

// scoring weights: semantic content match carries half the score, hard
// skill keywords 30%, experience the remaining 20%.
const (
	semanticWeight   = 0.5
	skillWeight      = 0.3
	experienceWeight = 0.2
)

// ScorerInput is everything the scorer needs about one candidate. Degraded
// marks resumes whose extracted text fell below the sufficiency threshold:
// they are scored (all zeroes), not skipped, so they still rank last in the
// output instead of vanishing.
type ScorerInput struct {
	FileName        string
	DownloadLink    string
	SemanticScore   float64
	SkillScore      float64
	Skills          []string
	MissingSkills   []string
	ExtraSkills     []string
	ExperienceYears int
	Degraded        bool
}

// ScorerService folds the sub-scores into one weighted percentage, assigns
// the decision tier, and derives the narrative insights.
type ScorerService interface {
	Score(input ScorerInput) models.CandidateMatch
}

type scorerService struct {
	targetYears int
}

// NewScorerService creates a scorer that grants the full experience
// sub-score at targetYears and scales linearly below it.
func NewScorerService(targetYears int) ScorerService {
	if targetYears <= 0 {
		targetYears = 3
	}
	return &scorerService{targetYears: targetYears}
}

func (s *scorerService) Score(input ScorerInput) models.CandidateMatch {
	if input.Degraded {
		input.SemanticScore = 0
		input.SkillScore = 0
		input.Skills = nil
		input.ExtraSkills = nil
		input.ExperienceYears = 0
	}

	expScore := 100.0
	if input.ExperienceYears < s.targetYears {
		expScore = float64(input.ExperienceYears) / float64(s.targetYears) * 100
	}

	finalScore := input.SemanticScore*semanticWeight +
		input.SkillScore*skillWeight +
		expScore*experienceWeight
	finalScore = round1(math.Max(0, math.Min(100, finalScore)))

	chance := selectionChance(finalScore)
	status := models.StatusShortlisted
	if chance == models.ChanceLow {
		status = models.StatusRejected
	}

	match := models.CandidateMatch{
		FileName:        input.FileName,
		MatchPercentage: finalScore,
		SemanticScore:   round1(input.SemanticScore),
		SkillScore:      round1(input.SkillScore),
		SelectionChance: chance,
		Status:          status,
		Skills:          emptyIfNil(input.Skills),
		MissingSkills:   emptyIfNil(input.MissingSkills),
		ExtraSkills:     emptyIfNil(input.ExtraSkills),
		ExperienceYears: input.ExperienceYears,
		DownloadLink:    input.DownloadLink,
	}

	pros, cons, tips := s.buildInsights(match, input)
	match.Pros = pros
	match.Cons = cons
	match.ImprovementTips = tips

	return match
}

// insightRule maps a predicate over the scored result to one narrative
// message. Rules run in a fixed order so the output stays auditable.
type insightRule struct {
	applies func(m models.CandidateMatch, in ScorerInput) bool
	message func(m models.CandidateMatch, in ScorerInput) string
}

var proRules = []insightRule{
	{
		applies: func(m models.CandidateMatch, _ ScorerInput) bool { return m.MatchPercentage > 75 },
		message: func(models.CandidateMatch, ScorerInput) string {
			return "Strong overall match with job requirements"
		},
	},
	{
		applies: func(m models.CandidateMatch, _ ScorerInput) bool { return m.SkillScore > 80 },
		message: func(models.CandidateMatch, ScorerInput) string {
			return "Excellent technical skill coverage"
		},
	},
	{
		applies: func(m models.CandidateMatch, _ ScorerInput) bool { return m.ExperienceYears >= 3 },
		message: func(m models.CandidateMatch, _ ScorerInput) string {
			return fmt.Sprintf("Solid experience level (%d years)", m.ExperienceYears)
		},
	},
}

var conRules = []insightRule{
	{
		applies: func(m models.CandidateMatch, _ ScorerInput) bool { return len(m.MissingSkills) > 0 },
		message: func(m models.CandidateMatch, _ ScorerInput) string {
			shown := m.MissingSkills
			if len(shown) > 3 {
				shown = shown[:3]
			}
			return "Missing critical skills: " + strings.Join(shown, ", ")
		},
	},
	{
		applies: func(m models.CandidateMatch, _ ScorerInput) bool { return m.SemanticScore < 50 },
		message: func(models.CandidateMatch, ScorerInput) string {
			return "Resume content strongly diverges from the job description context"
		},
	},
}

var tipRules = []insightRule{
	{
		applies: func(m models.CandidateMatch, _ ScorerInput) bool { return len(m.MissingSkills) > 0 },
		message: func(m models.CandidateMatch, _ ScorerInput) string {
			return "Learn and add these skills: " + strings.Join(m.MissingSkills, ", ")
		},
	},
	{
		applies: func(m models.CandidateMatch, _ ScorerInput) bool { return m.SemanticScore < 50 },
		message: func(models.CandidateMatch, ScorerInput) string {
			return "Tailor your summary and bullet points to match the language of the job description."
		},
	},
	{
		applies: func(m models.CandidateMatch, _ ScorerInput) bool { return m.ExperienceYears < 2 },
		message: func(models.CandidateMatch, ScorerInput) string {
			return "Highlight academic projects or internships to compensate for lower experience."
		},
	},
	{
		applies: func(m models.CandidateMatch, _ ScorerInput) bool { return len(m.Skills) == 0 },
		message: func(models.CandidateMatch, ScorerInput) string {
			return "Your resume might not be parsing correctly. Avoid complex layouts or graphics."
		},
	},
}

func (s *scorerService) buildInsights(m models.CandidateMatch, in ScorerInput) (pros, cons, tips []string) {
	pros = []string{}
	cons = []string{}
	tips = []string{}

	for _, rule := range proRules {
		if rule.applies(m, in) {
			pros = append(pros, rule.message(m, in))
		}
	}
	for _, rule := range conRules {
		if rule.applies(m, in) {
			cons = append(cons, rule.message(m, in))
		}
	}
	for _, rule := range tipRules {
		if rule.applies(m, in) {
			tips = append(tips, rule.message(m, in))
		}
	}
	return pros, cons, tips
}

func selectionChance(score float64) string {
	switch {
	case score >= 80:
		return models.ChanceHigh
	case score >= 50:
		return models.ChanceMedium
	default:
		return models.ChanceLow
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
