package scans

import "time"

// Disease label sentinels.
const (
	DiseaseHealthy = "Healthy"
	DiseaseError   = "Analysis Error"
	DiseaseUnknown = "Unknown"
)

// Field defaults applied when extraction leaves a field absent.
const (
	defaultConfidence   = 85
	defaultAffectedArea = "25%"
	defaultTreatment    = "Consult with a local agriculture helper."
	defaultPrevention   = "Keep plants spaced well and water at the base, not on leaves."
)

// DiseaseAnalysis is the structured outcome of analyzing one crop image.
// Every field is always populated in values produced by the Service.
type DiseaseAnalysis struct {
	Disease      string `json:"disease"`
	Confidence   int    `json:"confidence"`
	AffectedArea string `json:"affectedArea"`
	Treatment    string `json:"treatment"`
	Prevention   string `json:"prevention"`
}

// HealthyResult is the fixed record for a plant with no visible disease.
func HealthyResult() DiseaseAnalysis {
	return DiseaseAnalysis{
		Disease:      DiseaseHealthy,
		Confidence:   95,
		AffectedArea: "0%",
		Treatment:    "No treatment needed. Your plant looks good.",
		Prevention:   "Keep taking good care of your plants as you have been.",
	}
}

// ErrorResult is the fixed record returned when the pipeline cannot analyze
// an image. It carries retry guidance instead of a diagnosis.
func ErrorResult() DiseaseAnalysis {
	return DiseaseAnalysis{
		Disease:      DiseaseError,
		Confidence:   0,
		AffectedArea: "Unknown",
		Treatment:    "We couldn't analyze your image. Please try again with a clearer photo.",
		Prevention:   "Take photos in good light and make sure the plant is clearly visible.",
	}
}

// Partial holds whatever fields extraction recovered from the model's raw
// text. Nil means the field was absent and the Service default applies.
type Partial struct {
	Disease      *string
	Confidence   *int
	AffectedArea *string
	Treatment    *string
	Prevention   *string
}

// withDefaults resolves a Partial into a complete record.
func (p Partial) withDefaults() DiseaseAnalysis {
	out := DiseaseAnalysis{
		Disease:      DiseaseUnknown,
		Confidence:   defaultConfidence,
		AffectedArea: defaultAffectedArea,
		Treatment:    defaultTreatment,
		Prevention:   defaultPrevention,
	}
	if p.Disease != nil {
		out.Disease = *p.Disease
	}
	if p.Confidence != nil {
		out.Confidence = *p.Confidence
	}
	if p.AffectedArea != nil {
		out.AffectedArea = *p.AffectedArea
	}
	if p.Treatment != nil {
		out.Treatment = *p.Treatment
	}
	if p.Prevention != nil {
		out.Prevention = *p.Prevention
	}
	return out
}

// Scan is one persisted analysis row.
type Scan struct {
	ID        string
	UserID    string
	ImageURL  string
	Analysis  DiseaseAnalysis
	CreatedAt time.Time
}
