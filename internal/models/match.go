package models

// BatchRequest is the payload consumed by the matcher process on stdin and
// produced internally by the API when a run is dispatched to the pipeline.
type BatchRequest struct {
	JobDescription string   `json:"job_description"`
	FilePaths      []string `json:"file_paths"`
}

// CandidateMatch is the per-resume result of a match run, ordered into the
// response by descending MatchPercentage. Immutable after construction.
type CandidateMatch struct {
	FileName        string   `json:"fileName"`
	MatchPercentage float64  `json:"matchPercentage"`
	SemanticScore   float64  `json:"semanticScore"`
	SkillScore      float64  `json:"skillScore"`
	SelectionChance string   `json:"selectionChance"`
	Status          string   `json:"status"`
	Skills          []string `json:"skills"`
	MissingSkills   []string `json:"missingSkills"`
	ExtraSkills     []string `json:"extraSkills"`
	ExperienceYears int      `json:"experienceYears"`
	Pros            []string `json:"pros"`
	Cons            []string `json:"cons"`
	ImprovementTips []string `json:"improvementTips"`
	DownloadLink    string   `json:"downloadLink"`
}

const (
	ChanceHigh   = "High"
	ChanceMedium = "Medium"
	ChanceLow    = "Low"

	StatusShortlisted = "Shortlisted"
	StatusRejected    = "Rejected"
)

type UploadResponse struct {
	ID           string `json:"id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
}

type MatchRequest struct {
	JobDescription string   `json:"job_description" validate:"required"`
	DocumentIDs    []string `json:"document_ids" validate:"required"`
}

type MatchResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type ResultResponse struct {
	ID           string           `json:"id"`
	Status       string           `json:"status"`
	Results      []CandidateMatch `json:"results,omitempty"`
	ErrorMessage *string          `json:"error_message,omitempty"`
}

type SearchHit struct {
	FileName string  `json:"file_name"`
	Score    float32 `json:"score"`
	Snippet  string  `json:"snippet"`
}
