package services

import (
	"fmt"
	"regexp"
	"strings"
)

// SkillVocabulary is the immutable canonical skill set plus the alias table
// resolving synonyms and abbreviations to canonical names. Matching is
// case-insensitive and whole-token, except for symbol-bearing skills where
// word-boundary regexes misbehave around punctuation; those fall back to
// substring containment.
type SkillVocabulary struct {
	canonical []string
	aliases   []skillAlias
	matchers  map[string]skillMatcher
}

type skillAlias struct {
	alias     string
	canonical string
}

// skillMatcher reports whether a skill token occurs in normalized text.
type skillMatcher interface {
	Matches(text string) bool
}

type wholeWordMatcher struct {
	re *regexp.Regexp
}

func (m *wholeWordMatcher) Matches(text string) bool {
	return m.re.MatchString(text)
}

type substringMatcher struct {
	token string
}

func (m *substringMatcher) Matches(text string) bool {
	return strings.Contains(text, m.token)
}

// substringSkills lists the symbol-bearing tokens that need containment
// matching instead of \b boundaries.
var substringSkills = map[string]bool{
	"c++":     true,
	"c#":      true,
	".net":    true,
	"node.js": true,
	"nodejs":  true,
}

var defaultCanonicalSkills = []string{
	"python", "java", "c++", "c#", ".net", "go", "javascript", "typescript",
	"html", "css", "react", "angular", "vue", "node.js", "express",
	"django", "flask", "spring", "hibernate", "maven", "sql", "mysql",
	"postgresql", "mongodb", "redis", "aws", "azure", "gcp", "docker",
	"kubernetes", "terraform", "git", "linux", "machine learning",
	"deep learning", "tensorflow", "pytorch", "scikit-learn", "pandas",
	"numpy", "nlp", "computer vision", "agile", "scrum", "jira",
	"rest api", "graphql", "grpc", "microservices", "devops", "ci cd",
	"kafka", "tableau", "power bi", "excel", "spark", "hadoop",
}

var defaultAliases = []skillAlias{
	{"js", "javascript"},
	{"ts", "typescript"},
	{"nodejs", "node.js"},
	{"node js", "node.js"},
	{"reactjs", "react"},
	{"react.js", "react"},
	{"vuejs", "vue"},
	{"vue.js", "vue"},
	{"angularjs", "angular"},
	{"golang", "go"},
	{"postgres", "postgresql"},
	{"psql", "postgresql"},
	{"mongo", "mongodb"},
	{"k8s", "kubernetes"},
	{"ml", "machine learning"},
	{"dl", "deep learning"},
	{"sklearn", "scikit-learn"},
	{"spring boot", "spring"},
	{"springboot", "spring"},
	{"dotnet", ".net"},
	{"amazon web services", "aws"},
	{"google cloud", "gcp"},
	{"restful", "rest api"},
	{"rest apis", "rest api"},
	{"ci/cd", "ci cd"},
	{"cicd", "ci cd"},
	{"natural language processing", "nlp"},
	{"powerbi", "power bi"},
	{"apache kafka", "kafka"},
	{"apache spark", "spark"},
	{"java script", "javascript"},
}

// NewSkillVocabulary builds the default vocabulary. The alias invariant
// (every alias resolves to a canonical skill) is enforced at construction.
func NewSkillVocabulary() *SkillVocabulary {
	v, err := newSkillVocabulary(defaultCanonicalSkills, defaultAliases)
	if err != nil {
		// The default tables are compiled in; a violation is a programming error.
		panic(err)
	}
	return v
}

func newSkillVocabulary(canonical []string, aliases []skillAlias) (*SkillVocabulary, error) {
	canonicalSet := make(map[string]bool, len(canonical))
	for _, skill := range canonical {
		canonicalSet[skill] = true
	}

	for _, a := range aliases {
		if !canonicalSet[a.canonical] {
			return nil, fmt.Errorf("alias %q maps to unknown skill %q", a.alias, a.canonical)
		}
	}

	// Matchers are built against the normalized form of each token, since
	// they only ever run over normalized text ("scikit-learn" arrives as
	// "scikitlearn", "ci/cd" as "ci cd").
	norm := NewNormalizerService()
	matchers := make(map[string]skillMatcher, len(canonical)+len(aliases))
	for _, skill := range canonical {
		matchers[skill] = newMatcherFor(norm.Normalize(skill))
	}
	for _, a := range aliases {
		if _, ok := matchers[a.alias]; !ok {
			matchers[a.alias] = newMatcherFor(norm.Normalize(a.alias))
		}
	}

	return &SkillVocabulary{
		canonical: canonical,
		aliases:   aliases,
		matchers:  matchers,
	}, nil
}

func newMatcherFor(token string) skillMatcher {
	if substringSkills[token] || strings.ContainsAny(token, "+#.") {
		return &substringMatcher{token: token}
	}
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(token) + `\b`)
	return &wholeWordMatcher{re: re}
}

// ExtractSkills returns the deduplicated canonical skills found in
// normalized text, in discovery order: the canonical list first, then
// aliases for skills not already found.
func (v *SkillVocabulary) ExtractSkills(normalizedText string) []string {
	if normalizedText == "" {
		return nil
	}

	var found []string
	seen := make(map[string]bool)

	for _, skill := range v.canonical {
		if v.matchers[skill].Matches(normalizedText) {
			found = append(found, skill)
			seen[skill] = true
		}
	}

	for _, a := range v.aliases {
		if seen[a.canonical] {
			continue
		}
		if v.matchers[a.alias].Matches(normalizedText) {
			found = append(found, a.canonical)
			seen[a.canonical] = true
		}
	}

	return found
}

// IdentifyMissingSkills returns the job-description skills absent from the
// candidate's set, preserving job-description order, along with the full
// list of skills the job description asks for.
func (v *SkillVocabulary) IdentifyMissingSkills(jdText string, candidateSkills []string) ([]string, []string) {
	jdSkills := v.ExtractSkills(jdText)
	have := toSet(candidateSkills)

	var missing []string
	for _, skill := range jdSkills {
		if !have[skill] {
			missing = append(missing, skill)
		}
	}
	return missing, jdSkills
}

// IdentifyExtraSkills returns candidate skills the job description does not
// ask for, preserving candidate order. These are bonus skills.
func (v *SkillVocabulary) IdentifyExtraSkills(jdText string, candidateSkills []string) []string {
	wanted := toSet(v.ExtractSkills(jdText))

	var extra []string
	for _, skill := range candidateSkills {
		if !wanted[skill] {
			extra = append(extra, skill)
		}
	}
	return extra
}

// SkillMatchScore is the percentage of job-description skills the candidate
// covers. A job description with no recognized skills scores 0, never 100:
// a skill-less posting must not reward every candidate.
func (v *SkillVocabulary) SkillMatchScore(jdText string, candidateSkills []string) float64 {
	jdSkills := v.ExtractSkills(jdText)
	if len(jdSkills) == 0 {
		return 0
	}

	have := toSet(candidateSkills)
	matched := 0
	for _, skill := range jdSkills {
		if have[skill] {
			matched++
		}
	}
	return float64(matched) / float64(len(jdSkills)) * 100
}

func toSet(skills []string) map[string]bool {
	set := make(map[string]bool, len(skills))
	for _, s := range skills {
		set[s] = true
	}
	return set
}
