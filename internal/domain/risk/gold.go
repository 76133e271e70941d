package risk

import "fmt"

// GOLD ABE groups (2011 revision). Classification depends on symptom burden
// only; exacerbation history is recorded on assessments for audit but never
// influences the group.
const (
	GroupA = "A" // low symptom burden on both instruments
	GroupB = "B" // high symptom burden on exactly one instrument
	GroupE = "E" // high symptom burden on both instruments
)

// Symptom-burden cut points.
const (
	catHighThreshold  = 10 // CAT >= 10 counts as high symptoms
	mmrcHighThreshold = 2  // mMRC >= 2 counts as high symptoms
)

// ClassifyGOLD maps a CAT total score and an mMRC grade to a GOLD ABE group.
// Inputs outside their instrument ranges are rejected, never clamped.
func ClassifyGOLD(catScore, mmrcGrade int) (string, error) {
	if catScore < 0 || catScore > 40 {
		return "", fmt.Errorf("CAT score out of range [0,40]: %d", catScore)
	}
	if mmrcGrade < 0 || mmrcGrade > 4 {
		return "", fmt.Errorf("mMRC grade out of range [0,4]: %d", mmrcGrade)
	}

	highCAT := catScore >= catHighThreshold
	highMMRC := mmrcGrade >= mmrcHighThreshold

	switch {
	case highCAT && highMMRC:
		return GroupE, nil
	case highCAT || highMMRC:
		return GroupB, nil
	default:
		return GroupA, nil
	}
}

// legacyProjection is the fixed display-compatibility mapping of a GOLD group
// onto the numeric score/level pair of the pre-ABE scheme. It is derived,
// never stored independently.
var legacyProjection = map[string]struct {
	score int
	level string
}{
	GroupA: {25, "low"},
	GroupB: {50, "medium"},
	GroupE: {75, "high"},
}

// LegacyRisk returns the backward-compatible (risk_score, risk_level) pair for
// a GOLD group.
func LegacyRisk(goldGroup string) (int, string, error) {
	p, ok := legacyProjection[goldGroup]
	if !ok {
		return 0, "", fmt.Errorf("unknown GOLD group: %s", goldGroup)
	}
	return p.score, p.level, nil
}
