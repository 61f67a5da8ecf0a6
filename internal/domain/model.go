package domain

import "sort"

// DetectionResult is the detector's verdict for one file. The harness stores
// it as-is and never interprets the values.
type DetectionResult struct {
	Encoding   *string `json:"encoding"`
	Confidence float64 `json:"confidence"`
	Language   *string `json:"language"`
}

// NoDetection is the result for input the detector cannot classify.
func NoDetection() DetectionResult {
	return DetectionResult{}
}

// NewDetectionResult builds a result, mapping empty labels to null.
func NewDetectionResult(encoding string, confidence float64, language string) DetectionResult {
	return DetectionResult{
		Encoding:   optional(encoding),
		Confidence: confidence,
		Language:   optional(language),
	}
}

// EncodingLabel returns the encoding or "" when absent.
func (r DetectionResult) EncodingLabel() string {
	if r.Encoding == nil {
		return ""
	}
	return *r.Encoding
}

// LanguageLabel returns the language or "" when absent.
func (r DetectionResult) LanguageLabel() string {
	if r.Language == nil {
		return ""
	}
	return *r.Language
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Metadata attributes a snapshot to the environment that produced it.
type Metadata struct {
	RuntimeVersion  string `json:"runtime_version"`
	DetectorVersion string `json:"detector_version"`
	DetectorModule  string `json:"detector_module,omitempty"`
	CorpusRevision  string `json:"corpus_revision,omitempty"`

	// HarnessBuild identifies the charsnap build itself. It keys the
	// detection cache and is never serialised.
	HarnessBuild string `json:"-"`
	// DetectorLocal is set when the detector module is replaced by a local
	// directory, which carries no version to key cached results on.
	DetectorLocal bool `json:"-"`
}

// Cacheable reports whether detection results produced under m can be
// reused by a later run.
func (m Metadata) Cacheable() bool {
	return m.HarnessBuild != "" && !m.DetectorLocal
}

// IsZero reports whether neither version has been captured.
func (m Metadata) IsZero() bool {
	return m.RuntimeVersion == "" && m.DetectorVersion == ""
}

// Snapshot is one run's complete picture of the corpus. Field order is the
// serialised order.
type Snapshot struct {
	Metadata Metadata                   `json:"metadata"`
	Results  map[string]DetectionResult `json:"results"`
}

// Paths returns the result keys in lexical order.
func (s *Snapshot) Paths() []string {
	paths := make([]string, 0, len(s.Results))
	for p := range s.Results {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// EncodingCount is one row of an encoding histogram.
type EncodingCount struct {
	Encoding string `json:"encoding"`
	Files    int    `json:"files"`
}

// EncodingHistogram counts files per detected encoding, most frequent first.
// Files without an encoding are counted under "".
func (s *Snapshot) EncodingHistogram() []EncodingCount {
	counts := make(map[string]int)
	for _, r := range s.Results {
		counts[r.EncodingLabel()]++
	}

	hist := make([]EncodingCount, 0, len(counts))
	for enc, n := range counts {
		hist = append(hist, EncodingCount{Encoding: enc, Files: n})
	}
	sort.Slice(hist, func(i, j int) bool {
		if hist[i].Files != hist[j].Files {
			return hist[i].Files > hist[j].Files
		}
		return hist[i].Encoding < hist[j].Encoding
	})
	return hist
}

// RunEntry is one line of the run history kept next to the snapshots.
type RunEntry struct {
	ID              string `json:"id"`
	Timestamp       string `json:"timestamp"`
	OutputPath      string `json:"output_path"`
	RuntimeVersion  string `json:"runtime_version"`
	DetectorVersion string `json:"detector_version"`
	CorpusRevision  string `json:"corpus_revision,omitempty"`
	Files           int    `json:"files"`
	Digest          string `json:"digest"`
}
