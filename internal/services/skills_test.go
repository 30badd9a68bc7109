package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func normalized(t *testing.T, text string) string {
	t.Helper()
	return NewNormalizerService().Normalize(text)
}

func TestExtractSkills_Deduplicates(t *testing.T) {
	v := NewSkillVocabulary()

	skills := v.ExtractSkills(normalized(t, "Python PYTHON python"))

	assert.Equal(t, []string{"python"}, skills)
}

func TestExtractSkills_AliasResolvesToCanonical(t *testing.T) {
	v := NewSkillVocabulary()

	skills := v.ExtractSkills(normalized(t, "Strong js skills, also wrote javascript tooling"))

	count := 0
	for _, s := range skills {
		if s == "javascript" {
			count++
		}
	}
	assert.Equal(t, 1, count, "alias and canonical must resolve to one entry")
}

func TestExtractSkills_AliasOnly(t *testing.T) {
	v := NewSkillVocabulary()

	skills := v.ExtractSkills(normalized(t, "Deployed with k8s and postgres on golang services"))

	assert.Contains(t, skills, "kubernetes")
	assert.Contains(t, skills, "postgresql")
	assert.Contains(t, skills, "go")
}

func TestExtractSkills_SymbolBearingSkills(t *testing.T) {
	v := NewSkillVocabulary()

	skills := v.ExtractSkills(normalized(t, "Systems work in C++ and C#, APIs on Node.js and .NET"))

	assert.Contains(t, skills, "c++")
	assert.Contains(t, skills, "c#")
	assert.Contains(t, skills, "node.js")
	assert.Contains(t, skills, ".net")
}

func TestExtractSkills_WholeWordBoundaries(t *testing.T) {
	v := NewSkillVocabulary()

	skills := v.ExtractSkills(normalized(t, "Senior JavaScript developer"))

	assert.Contains(t, skills, "javascript")
	assert.NotContains(t, skills, "java", "java must not match inside javascript")
}

func TestExtractSkills_EmptyText(t *testing.T) {
	v := NewSkillVocabulary()

	assert.Empty(t, v.ExtractSkills(""))
}

func TestIdentifyMissingSkills_PreservesJDOrder(t *testing.T) {
	v := NewSkillVocabulary()

	jd := normalized(t, "Java Developer, Spring Boot, SQL, Hibernate")
	missing, jdSkills := v.IdentifyMissingSkills(jd, []string{"java", "sql"})

	assert.Equal(t, []string{"java", "spring", "hibernate", "sql"}, jdSkills)
	assert.Equal(t, []string{"spring", "hibernate"}, missing)
}

func TestIdentifyExtraSkills_PreservesCandidateOrder(t *testing.T) {
	v := NewSkillVocabulary()

	jd := normalized(t, "Looking for a Python engineer")
	extra := v.IdentifyExtraSkills(jd, []string{"python", "docker", "aws"})

	assert.Equal(t, []string{"docker", "aws"}, extra)
}

func TestSkillMatchScore_ZeroWhenJDHasNoSkills(t *testing.T) {
	v := NewSkillVocabulary()

	jd := normalized(t, "We want a motivated self starter with great attitude")
	score := v.SkillMatchScore(jd, []string{"python", "java", "docker"})

	assert.Equal(t, 0.0, score)
}

func TestSkillMatchScore_PartialMatch(t *testing.T) {
	v := NewSkillVocabulary()

	jd := normalized(t, "Java, Spring Boot, SQL, Hibernate")
	score := v.SkillMatchScore(jd, []string{"java", "sql"})

	assert.InDelta(t, 50.0, score, 0.001)
}

func TestNewSkillVocabulary_AliasInvariant(t *testing.T) {
	_, err := newSkillVocabulary(
		[]string{"python"},
		[]skillAlias{{"py", "python"}, {"js", "javascript"}},
	)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "javascript")
}
