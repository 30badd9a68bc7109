package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumeshortlist/internal/models"
)

// fileExtractor reads the file verbatim, standing in for the PDF chain.
type fileExtractor struct{}

func (fileExtractor) Extract(_ context.Context, path string) ExtractionResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return ExtractionResult{Method: "none"}
	}
	return ExtractionResult{Text: string(data), Method: "stub"}
}

// fixedOracle returns one canned score per resume, zero for empty texts.
type fixedOracle struct {
	score float64
}

func (o fixedOracle) Scores(_ context.Context, _ string, resumeTexts []string) ([]float64, error) {
	scores := make([]float64, len(resumeTexts))
	for i, text := range resumeTexts {
		if text != "" {
			scores[i] = o.score
		}
	}
	return scores, nil
}

func newTestMatcher(oracle SimilarityOracle) MatcherService {
	return NewMatcherService(
		fileExtractor{},
		NewNormalizerService(),
		NewSkillVocabulary(),
		NewExperienceService(),
		oracle,
		NewScorerService(3),
		minSufficientChars,
		"/uploads",
	)
}

func writeResume(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestMatchBatch_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	path := writeResume(t, dir, "a.pdf",
		"Senior backend engineer with 5 years experience with Java and SQL on large enterprise platforms.")

	m := newTestMatcher(fixedOracle{score: 80})

	results := m.MatchBatch(context.Background(), models.BatchRequest{
		JobDescription: "Java Developer, Spring Boot, SQL, Hibernate",
		FilePaths:      []string{path},
	})

	require.Len(t, results, 1)
	r := results[0]

	assert.Equal(t, "a.pdf", r.FileName)
	assert.Equal(t, 5, r.ExperienceYears)
	assert.Contains(t, r.Skills, "java")
	assert.Contains(t, r.Skills, "sql")
	assert.Contains(t, r.MissingSkills, "spring")
	assert.Contains(t, r.MissingSkills, "hibernate")
	// 0.5*80 + 0.3*50 + 0.2*100 = 75 -> Medium -> Shortlisted
	assert.Equal(t, 75.0, r.MatchPercentage)
	assert.Equal(t, models.StatusShortlisted, r.Status)
	assert.Equal(t, "/uploads/a.pdf", r.DownloadLink)
}

func TestMatchBatch_EmptyRequestYieldsEmptyResult(t *testing.T) {
	m := newTestMatcher(fixedOracle{score: 80})

	assert.Empty(t, m.MatchBatch(context.Background(), models.BatchRequest{
		JobDescription: "",
		FilePaths:      []string{"a.pdf"},
	}))
	assert.Empty(t, m.MatchBatch(context.Background(), models.BatchRequest{
		JobDescription: "Java Developer",
		FilePaths:      nil,
	}))
}

func TestMatchBatch_MissingFileSilentlySkipped(t *testing.T) {
	dir := t.TempDir()
	path := writeResume(t, dir, "real.pdf",
		"Java engineer with 4 years of experience building SQL-backed services and APIs.")

	m := newTestMatcher(fixedOracle{score: 60})

	results := m.MatchBatch(context.Background(), models.BatchRequest{
		JobDescription: "Java and SQL developer",
		FilePaths:      []string{path, filepath.Join(dir, "ghost.pdf")},
	})

	require.Len(t, results, 1)
	assert.Equal(t, "real.pdf", results[0].FileName)
}

func TestMatchBatch_DegradedInputStillScored(t *testing.T) {
	dir := t.TempDir()
	good := writeResume(t, dir, "good.pdf",
		"Experienced Java developer, 6 years of experience with SQL and Spring in production.")
	degraded := writeResume(t, dir, "scan.pdf", "short")

	m := newTestMatcher(fixedOracle{score: 70})

	results := m.MatchBatch(context.Background(), models.BatchRequest{
		JobDescription: "Java, Spring, SQL",
		FilePaths:      []string{good, degraded},
	})

	require.Len(t, results, 2)

	// Degraded resume ranks last with everything zeroed.
	last := results[1]
	assert.Equal(t, "scan.pdf", last.FileName)
	assert.Equal(t, 0.0, last.MatchPercentage)
	assert.Equal(t, 0.0, last.SemanticScore)
	assert.Equal(t, 0.0, last.SkillScore)
	assert.Empty(t, last.Skills)
	assert.Equal(t, 0, last.ExperienceYears)
	assert.Contains(t, last.ImprovementTips,
		"Your resume might not be parsing correctly. Avoid complex layouts or graphics.")
}

func TestMatchBatch_SortedDescendingWithStableTies(t *testing.T) {
	dir := t.TempDir()
	strong := writeResume(t, dir, "strong.pdf",
		"Java, Spring and SQL specialist with 5 years of experience delivering backend systems.")
	tieA := writeResume(t, dir, "tie_a.pdf",
		"Generalist engineer writing Python services for analytics teams over many seasons now.")
	tieB := writeResume(t, dir, "tie_b.pdf",
		"Generalist engineer writing Python services for analytics teams over many seasons too.")

	m := newTestMatcher(fixedOracle{score: 50})

	results := m.MatchBatch(context.Background(), models.BatchRequest{
		JobDescription: "Java, Spring, SQL",
		FilePaths:      []string{tieA, strong, tieB},
	})

	require.Len(t, results, 3)
	assert.Equal(t, "strong.pdf", results[0].FileName)
	// Equal-scoring resumes keep request order.
	assert.Equal(t, "tie_a.pdf", results[1].FileName)
	assert.Equal(t, "tie_b.pdf", results[2].FileName)

	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].MatchPercentage, results[i].MatchPercentage)
	}
}

// countingExtractor tracks how often each path is extracted.
type countingExtractor struct {
	calls map[string]int
}

func (c *countingExtractor) Extract(_ context.Context, path string) ExtractionResult {
	c.calls[path]++
	data, err := os.ReadFile(path)
	if err != nil {
		return ExtractionResult{Method: "none"}
	}
	return ExtractionResult{Text: string(data), Method: "stub"}
}

func TestMatchBatchWithTexts_ExtractsEachFileOnce(t *testing.T) {
	dir := t.TempDir()
	path := writeResume(t, dir, "a.pdf",
		"Java engineer with 4 years of experience across SQL-heavy backend systems.")

	extractor := &countingExtractor{calls: map[string]int{}}
	m := NewMatcherService(
		extractor,
		NewNormalizerService(),
		NewSkillVocabulary(),
		NewExperienceService(),
		fixedOracle{score: 60},
		NewScorerService(3),
		minSufficientChars,
		"/uploads",
	)

	results, texts := m.MatchBatchWithTexts(context.Background(), models.BatchRequest{
		JobDescription: "Java and SQL",
		FilePaths:      []string{path},
	})

	require.Len(t, results, 1)
	assert.Equal(t, 1, extractor.calls[path])
	assert.Contains(t, texts[path], "Java engineer")
}

type failingOracle struct{}

func (failingOracle) Scores(context.Context, string, []string) ([]float64, error) {
	return nil, assert.AnError
}

func TestMatchBatch_OracleFailureZeroesSemanticScores(t *testing.T) {
	dir := t.TempDir()
	path := writeResume(t, dir, "a.pdf",
		"Java developer with 3 years of experience and solid SQL background in fintech.")

	m := newTestMatcher(failingOracle{})

	results := m.MatchBatch(context.Background(), models.BatchRequest{
		JobDescription: "Java and SQL",
		FilePaths:      []string{path},
	})

	require.Len(t, results, 1)
	assert.Equal(t, 0.0, results[0].SemanticScore)
	// Skill and experience sub-scores survive the oracle failure.
	assert.Equal(t, 100.0, results[0].SkillScore)
	assert.Equal(t, 3, results[0].ExperienceYears)
}
