package survey

import (
	"fmt"
	"sort"
)

// CATItems are the 8 items of the COPD Assessment Test, each answered 0-5.
var CATItems = []string{
	"cough",
	"mucus",
	"chest_tightness",
	"breathlessness",
	"activity_limitation",
	"confidence_leaving_home",
	"sleep",
	"energy",
}

// ScoreCAT sums the 8 CAT item scores and classifies the total.
//
// Every item must be present and within 0-5. The total is validated against
// 0-40 after summation; out-of-range values are rejected, never clamped.
func ScoreCAT(answers map[string]int) (int, string, error) {
	if len(answers) != len(CATItems) {
		return 0, "", fmt.Errorf("CAT requires exactly %d answers, got %d", len(CATItems), len(answers))
	}

	total := 0
	for _, item := range CATItems {
		v, ok := answers[item]
		if !ok {
			return 0, "", fmt.Errorf("missing CAT answer: %s", item)
		}
		if v < 0 || v > 5 {
			return 0, "", fmt.Errorf("CAT answer %s out of range [0,5]: %d", item, v)
		}
		total += v
	}

	if total < 0 || total > 40 {
		return 0, "", fmt.Errorf("CAT total score out of range [0,40]: %d", total)
	}

	return total, catSeverity(total), nil
}

func catSeverity(total int) string {
	switch {
	case total <= 10:
		return SeverityMild
	case total <= 20:
		return SeverityModerate
	case total <= 30:
		return SeveritySevere
	default:
		return SeverityVerySevere
	}
}

// ScoreMMRC validates a single mMRC dyspnea grade and classifies it. The
// stored total score equals the grade itself.
func ScoreMMRC(grade int) (int, string, error) {
	if grade < 0 || grade > 4 {
		return 0, "", fmt.Errorf("mMRC grade out of range [0,4]: %d", grade)
	}

	var severity string
	switch grade {
	case 0, 1:
		severity = SeverityMild
	case 2:
		severity = SeverityModerate
	case 3:
		severity = SeveritySevere
	case 4:
		severity = SeverityVerySevere
	}

	return grade, severity, nil
}

var mmrcDescriptions = map[string]map[int]string{
	"en": {
		0: "Breathless only with strenuous exercise",
		1: "Short of breath when hurrying on level ground or walking up a slight hill",
		2: "Walks slower than people of the same age due to breathlessness, or must stop for breath when walking at own pace",
		3: "Stops for breath after walking about 100 meters or after a few minutes on level ground",
		4: "Too breathless to leave the house, or breathless when dressing or undressing",
	},
	"es": {
		0: "Disnea solo con ejercicio intenso",
		1: "Disnea al andar deprisa en llano o al subir una pendiente ligera",
		2: "Camina más despacio que personas de su edad por disnea, o debe detenerse a respirar al andar a su propio paso",
		3: "Se detiene a respirar tras caminar unos 100 metros o tras pocos minutos en llano",
		4: "Demasiada disnea para salir de casa, o disnea al vestirse o desvestirse",
	},
}

// MMRCDescription returns the human-readable description of an mMRC grade in
// the given locale ("en" or "es"). It is a display aid only and plays no part
// in scoring. Unknown locales fall back to English.
func MMRCDescription(grade int, locale string) (string, error) {
	if grade < 0 || grade > 4 {
		return "", fmt.Errorf("mMRC grade out of range [0,4]: %d", grade)
	}
	byGrade, ok := mmrcDescriptions[locale]
	if !ok {
		byGrade = mmrcDescriptions["en"]
	}
	return byGrade[grade], nil
}

// MMRCLocales lists the locales MMRCDescription supports.
func MMRCLocales() []string {
	locales := make([]string, 0, len(mmrcDescriptions))
	for l := range mmrcDescriptions {
		locales = append(locales, l)
	}
	sort.Strings(locales)
	return locales
}
