package services

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"sort"

	"resumeshortlist/internal/models"
)

// MatcherService drives the whole pipeline for one batch: extraction,
// normalization, skill and experience analysis, one similarity-oracle call
// for the batch, scoring, and ranking. Failures are isolated per document;
// one bad file never aborts the batch.
type MatcherService interface {
	MatchBatch(ctx context.Context, req models.BatchRequest) []models.CandidateMatch
	// MatchBatchWithTexts additionally returns the raw extracted text per
	// scored file path, so callers that need the text afterwards (the
	// resume index) do not run the extraction chain a second time.
	MatchBatchWithTexts(ctx context.Context, req models.BatchRequest) ([]models.CandidateMatch, map[string]string)
}

type matcherService struct {
	extractor       ExtractorService
	normalizer      NormalizerService
	vocabulary      *SkillVocabulary
	experience      ExperienceService
	oracle          SimilarityOracle
	scorer          ScorerService
	minTextLength   int
	downloadBaseURL string
}

func NewMatcherService(
	extractor ExtractorService,
	normalizer NormalizerService,
	vocabulary *SkillVocabulary,
	experience ExperienceService,
	oracle SimilarityOracle,
	scorer ScorerService,
	minTextLength int,
	downloadBaseURL string,
) MatcherService {
	if minTextLength <= 0 {
		minTextLength = minSufficientChars
	}
	return &matcherService{
		extractor:       extractor,
		normalizer:      normalizer,
		vocabulary:      vocabulary,
		experience:      experience,
		oracle:          oracle,
		scorer:          scorer,
		minTextLength:   minTextLength,
		downloadBaseURL: downloadBaseURL,
	}
}

// candidateDoc is the per-document intermediate state collected before the
// batch-wide similarity call.
type candidateDoc struct {
	path            string
	cleanText       string
	skills          []string
	experienceYears int
	degraded        bool
}

// MatchBatch implements MatcherService. An empty job description or file
// list yields an empty result, not an error. Paths that do not exist are
// silently skipped.
func (m *matcherService) MatchBatch(ctx context.Context, req models.BatchRequest) []models.CandidateMatch {
	results, _ := m.MatchBatchWithTexts(ctx, req)
	return results
}

// MatchBatchWithTexts implements MatcherService.
func (m *matcherService) MatchBatchWithTexts(ctx context.Context, req models.BatchRequest) ([]models.CandidateMatch, map[string]string) {
	results := []models.CandidateMatch{}
	texts := map[string]string{}

	if req.JobDescription == "" || len(req.FilePaths) == 0 {
		return results, texts
	}

	cleanedJD := m.normalizer.Normalize(req.JobDescription)

	var docs []candidateDoc
	for _, path := range req.FilePaths {
		if _, err := os.Stat(path); err != nil {
			log.Printf("⚠️  Skipping missing file: %s", path)
			continue
		}

		extraction := m.extractor.Extract(ctx, path)
		cleaned := m.normalizer.Normalize(extraction.Text)
		texts[path] = extraction.Text

		doc := candidateDoc{path: path, cleanText: cleaned}

		if len(cleaned) < m.minTextLength {
			log.Printf("⚠️  Low text content for %s (len=%d, method=%s)", path, len(cleaned), extraction.Method)
			doc.degraded = true
			doc.cleanText = ""
		} else {
			doc.skills = m.vocabulary.ExtractSkills(cleaned)
			doc.experienceYears = m.experience.ExtractExperience(extraction.Text)
		}

		docs = append(docs, doc)
	}

	if len(docs) == 0 {
		return results, texts
	}

	// The similarity oracle runs once per batch: the term-frequency
	// strategy needs the joint corpus before any per-document score.
	resumeTexts := make([]string, len(docs))
	for i, doc := range docs {
		resumeTexts[i] = doc.cleanText
	}

	semanticScores, err := m.oracle.Scores(ctx, cleanedJD, resumeTexts)
	if err != nil {
		log.Printf("⚠️  Similarity oracle failed, semantic scores zeroed: %v", err)
		semanticScores = make([]float64, len(docs))
	}

	for i, doc := range docs {
		missing, _ := m.vocabulary.IdentifyMissingSkills(cleanedJD, doc.skills)
		extra := m.vocabulary.IdentifyExtraSkills(cleanedJD, doc.skills)
		skillScore := m.vocabulary.SkillMatchScore(cleanedJD, doc.skills)

		fileName := filepath.Base(doc.path)
		results = append(results, m.scorer.Score(ScorerInput{
			FileName:        fileName,
			DownloadLink:    m.downloadBaseURL + "/" + fileName,
			SemanticScore:   semanticScores[i],
			SkillScore:      skillScore,
			Skills:          doc.skills,
			MissingSkills:   missing,
			ExtraSkills:     extra,
			ExperienceYears: doc.experienceYears,
			Degraded:        doc.degraded,
		}))
	}

	// Rank by score; the stable sort keeps request order on ties.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchPercentage > results[j].MatchPercentage
	})

	return results, texts
}
