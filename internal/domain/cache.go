package domain

// CacheFile is the on-disk form of the detection cache. Entries are keyed by
// a digest of the file content.
type CacheFile struct {
	DetectorVersion string                     `json:"detector_version"`
	DetectorModule  string                     `json:"detector_module"`
	DetectorMode    DetectorMode               `json:"detector_mode"`
	HarnessBuild    string                     `json:"harness_build"`
	Entries         map[string]DetectionResult `json:"entries"`
}

// IsInvalidated reports whether the cache was produced by a different detector
// or a different charsnap build.
func (c *CacheFile) IsInvalidated(meta Metadata, mode DetectorMode) bool {
	return c.DetectorVersion != meta.DetectorVersion ||
		c.DetectorModule != meta.DetectorModule ||
		c.DetectorMode != mode ||
		c.HarnessBuild != meta.HarnessBuild
}
