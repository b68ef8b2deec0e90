package scanner

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/dmdhrumilmistry/chitragupta/database"
	"github.com/pkg/errors"
)

// sourceMetadataMarker distinguishes finding lines from the tool's own log
// lines in the json output stream.
const sourceMetadataMarker = "SourceMetadata"

// Finding is one parsed trufflehog output line.
type Finding struct {
	FilePath       string
	FileLine       *int
	CommitterEmail string
	CommitDatetime *time.Time
	IsVerified     bool
	DetectorName   string
	Raw            string
	RawV2          string
	// AdditionalInfo keeps the whole parsed object for forward compatibility
	// with newer trufflehog schemas.
	AdditionalInfo database.JSONB
}

// IsFindingLine reports whether a raw output line is a candidate finding.
// Blank lines and non-finding log lines are not errors, just noise.
func IsFindingLine(line string) bool {
	return strings.TrimSpace(line) != "" && strings.Contains(line, sourceMetadataMarker)
}

// trufflehog emits git timestamps like "2023-03-04 12:00:00 +0000"; newer
// versions use RFC 3339.
var timestampLayouts = []string{
	"2006-01-02 15:04:05 -0700",
	time.RFC3339,
}

func parseTimestamp(raw string) (time.Time, error) {
	var lastErr error
	for _, layout := range timestampLayouts {
		ts, err := time.Parse(layout, raw)
		if err == nil {
			return ts, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// ParseFinding decodes one json finding line. The git context lives under
// SourceMetadata.Data.Git.
func ParseFinding(line string) (Finding, error) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return Finding{}, errors.Wrap(err, "could not decode finding line")
	}

	finding := Finding{
		AdditionalInfo: database.JSONB(raw),
	}

	if verified, ok := raw["Verified"].(bool); ok {
		finding.IsVerified = verified
	}
	if detector, ok := raw["DetectorName"].(string); ok {
		finding.DetectorName = detector
	}
	if rawSecret, ok := raw["Raw"].(string); ok {
		finding.Raw = rawSecret
	}
	if rawV2, ok := raw["RawV2"].(string); ok {
		finding.RawV2 = rawV2
	}

	git := digMap(raw, "SourceMetadata", "Data", "Git")
	if file, ok := git["file"].(string); ok {
		finding.FilePath = file
	}
	if line, ok := git["line"].(float64); ok {
		l := int(line)
		finding.FileLine = &l
	}
	if email, ok := git["email"].(string); ok {
		finding.CommitterEmail = email
	}
	if ts, ok := git["timestamp"].(string); ok {
		parsed, err := parseTimestamp(ts)
		if err != nil {
			return Finding{}, errors.Wrapf(err, "could not parse commit timestamp %q", ts)
		}
		finding.CommitDatetime = &parsed
	}

	return finding, nil
}

func digMap(m map[string]any, keys ...string) map[string]any {
	for _, key := range keys {
		next, ok := m[key].(map[string]any)
		if !ok {
			return map[string]any{}
		}
		m = next
	}
	return m
}
