package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_LowercasesAndStripsPunctuation(t *testing.T) {
	n := NewNormalizerService()

	got := n.Normalize("Senior Engineer (Backend), Java & SQL!")

	assert.Equal(t, "senior engineer backend java sql", got)
}

func TestNormalize_RemovesEmailsAndURLs(t *testing.T) {
	n := NewNormalizerService()

	got := n.Normalize("John Doe john.doe@example.com https://github.com/johndoe Java developer")

	assert.NotContains(t, got, "@")
	assert.NotContains(t, got, "github")
	assert.Contains(t, got, "java developer")
}

func TestNormalize_SplitsCamelBoundaries(t *testing.T) {
	n := NewNormalizerService()

	got := n.Normalize("JavaDeveloper with SpringBoot")

	assert.Contains(t, got, "java developer")
	assert.Contains(t, got, "spring boot")
}

func TestNormalize_ReplacesSeparatorGlyphs(t *testing.T) {
	n := NewNormalizerService()

	got := n.Normalize("java|sql/linux • docker")

	assert.Equal(t, "java sql linux docker", got)
}

func TestNormalize_KeepsSkillSymbols(t *testing.T) {
	n := NewNormalizerService()

	got := n.Normalize("Worked with C++, C# and Node.js since 2019")

	assert.Contains(t, got, "c++")
	assert.Contains(t, got, "c#")
	assert.Contains(t, got, "node.js")
	assert.Contains(t, got, "2019")
}

func TestNormalize_StripsURLRevealedByFiltering(t *testing.T) {
	n := NewNormalizerService()

	got := n.Normalize("contact www,.site.com for details")

	assert.Equal(t, "contact for details", got)
	assert.Equal(t, got, n.Normalize(got))
}

func TestNormalize_EmptyInput(t *testing.T) {
	n := NewNormalizerService()

	assert.Equal(t, "", n.Normalize(""))
	assert.Equal(t, "", n.Normalize("   \n\t  "))
}

func TestNormalize_Idempotent(t *testing.T) {
	n := NewNormalizerService()

	samples := []string{
		"JavaDeveloper john@example.com https://example.com | C++/SQL",
		"Plain lowercase text already",
		"Résumé with àccénts and —dashes—",
		"5+ years of experience • Node.js, React",
		"contact www,.site.com or www.(site).org today",
	}

	for _, sample := range samples {
		once := n.Normalize(sample)
		twice := n.Normalize(once)
		assert.Equal(t, once, twice, "normalize must be idempotent for %q", sample)
	}
}
