package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractExperience_MaxAcrossPatterns(t *testing.T) {
	e := NewExperienceService()

	years := e.ExtractExperience("3 years of experience in backend work and 5 years in management")

	assert.Equal(t, 5, years)
}

func TestExtractExperience_VariantsAndPlus(t *testing.T) {
	e := NewExperienceService()

	cases := map[string]int{
		"7+ years of experience in distributed systems": 7,
		"Experience of 4 years with payment platforms":  4,
		"worked for 2 yrs at a startup":                 2,
		"over 6 yrs of experience shipping software":    6,
		"5 years experience with Java and SQL":          5,
	}

	for text, want := range cases {
		assert.Equal(t, want, e.ExtractExperience(text), "text: %q", text)
	}
}

func TestExtractExperience_NoMatch(t *testing.T) {
	e := NewExperienceService()

	assert.Equal(t, 0, e.ExtractExperience("Fresh graduate, passionate about learning"))
	assert.Equal(t, 0, e.ExtractExperience(""))
}

func TestExtractExperience_IgnoresUnrelatedNumbers(t *testing.T) {
	e := NewExperienceService()

	years := e.ExtractExperience("Graduated in 2018, managed a team of 12 people")

	assert.Equal(t, 0, years)
}
