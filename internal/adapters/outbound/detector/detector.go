package detector

import (
	"github.com/saintfish/chardet"

	"github.com/charsnap/charsnap/internal/domain"
)

// ModulePath is the Go module that performs the detection. The fingerprint
// adapter looks it up in the build info to report the detector version.
const ModulePath = "github.com/saintfish/chardet"

// ASCII is the label reported for pure 7-bit input.
const ASCII = "ascii"

const escape = 0x1B

// CharsetDetector implements domain.Detector on top of chardet's ICU port.
type CharsetDetector struct {
	inner *chardet.Detector
}

// New creates a detector. DetectorModeHTML strips markup before detection;
// any other mode treats input as plain text.
func New(mode domain.DetectorMode) *CharsetDetector {
	if mode == domain.DetectorModeHTML {
		return &CharsetDetector{inner: chardet.NewHtmlDetector()}
	}
	return &CharsetDetector{inner: chardet.NewTextDetector()}
}

// Detect returns the most confident guess for raw. Empty or unclassifiable
// input yields a result with a null encoding and zero confidence.
func (d *CharsetDetector) Detect(raw []byte) domain.DetectionResult {
	if len(raw) == 0 {
		return domain.NoDetection()
	}
	if isPlainASCII(raw) {
		return domain.NewDetectionResult(ASCII, 1, "")
	}

	best, err := d.inner.DetectBest(raw)
	if err != nil || best == nil {
		return domain.NoDetection()
	}
	return toResult(*best)
}

// DetectAll returns every candidate with non-zero confidence, most confident
// first.
func (d *CharsetDetector) DetectAll(raw []byte) []domain.DetectionResult {
	if len(raw) == 0 {
		return nil
	}
	if isPlainASCII(raw) {
		return []domain.DetectionResult{domain.NewDetectionResult(ASCII, 1, "")}
	}

	all, err := d.inner.DetectAll(raw)
	if err != nil {
		return nil
	}
	results := make([]domain.DetectionResult, 0, len(all))
	for _, r := range all {
		results = append(results, toResult(r))
	}
	return results
}

// isPlainASCII reports 7-bit input with no escape bytes. ESC introduces the
// ISO-2022 families, which are 7-bit but not ASCII.
func isPlainASCII(raw []byte) bool {
	for _, c := range raw {
		if c >= 0x80 || c == escape {
			return false
		}
	}
	return true
}

// toResult scales chardet's 0-100 confidence to [0,1].
func toResult(r chardet.Result) domain.DetectionResult {
	confidence := float64(r.Confidence) / 100
	switch {
	case confidence < 0:
		confidence = 0
	case confidence > 1:
		confidence = 1
	}
	return domain.NewDetectionResult(r.Charset, confidence, r.Language)
}
