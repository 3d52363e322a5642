package diabetesrisk

import (
	"encoding/json"
	"strings"
)

// Sex is the closed set of sex categories the classifier understands.
type Sex int

const (
	SexUnknown Sex = iota
	SexMale
	SexFemale
)

// ParseSex maps the free-text gender recorded on a patient to a Sex.
// Only "masculin" and "feminin" are recognized (case-insensitive).
func ParseSex(gender string) Sex {
	switch strings.ToLower(strings.TrimSpace(gender)) {
	case "masculin":
		return SexMale
	case "feminin":
		return SexFemale
	default:
		return SexUnknown
	}
}

func (s Sex) String() string {
	switch s {
	case SexMale:
		return "male"
	case SexFemale:
		return "female"
	default:
		return "unknown"
	}
}

// Tier is a diabetes risk classification outcome.
type Tier int

const (
	TierNone Tier = iota
	TierBorderline
	TierInDanger
	TierEarlyOnset
	TierPatientNotFound
)

// PatientNotFoundLabel is rendered for TierPatientNotFound.
const PatientNotFoundLabel = "Aucun risque (Patient non trouvé)"

// String renders the tier the way it is shown to practitioners.
func (t Tier) String() string {
	switch t {
	case TierBorderline:
		return "Borderline"
	case TierInDanger:
		return "In Danger"
	case TierEarlyOnset:
		return "Early onset"
	case TierPatientNotFound:
		return PatientNotFoundLabel
	default:
		return "None"
	}
}

// Code returns a stable machine-readable identifier for the tier.
func (t Tier) Code() string {
	switch t {
	case TierBorderline:
		return "borderline"
	case TierInDanger:
		return "in_danger"
	case TierEarlyOnset:
		return "early_onset"
	case TierPatientNotFound:
		return "patient_not_found"
	default:
		return "none"
	}
}

func (t Tier) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Code())
}

// Age below which the sex-specific thresholds apply.
const youngAgeLimit = 30

// Classify maps an evidence count, an age in years and a sex to a risk tier.
// Rules are checked from the most to the least severe tier and the first
// match wins. Unknown sex never satisfies a sex-specific rule, and there is
// no Borderline tier below 30.
func Classify(count, age int, sex Sex) Tier {
	switch {
	case isEarlyOnset(count, age, sex):
		return TierEarlyOnset
	case isInDanger(count, age, sex):
		return TierInDanger
	case isBorderline(count, age):
		return TierBorderline
	default:
		return TierNone
	}
}

func isEarlyOnset(count, age int, sex Sex) bool {
	if age < youngAgeLimit {
		return (sex == SexMale && count >= 5) || (sex == SexFemale && count >= 7)
	}
	return count >= 8
}

func isInDanger(count, age int, sex Sex) bool {
	if age < youngAgeLimit {
		return (sex == SexMale && count >= 3) || (sex == SexFemale && count >= 4)
	}
	return count == 6 || count == 7
}

func isBorderline(count, age int) bool {
	return age >= youngAgeLimit && count >= 2 && count <= 5
}
