package diabetesrisk

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_Boundaries(t *testing.T) {
	tests := []struct {
		count int
		age   int
		sex   Sex
		want  Tier
	}{
		{5, 25, SexMale, TierEarlyOnset},
		{4, 25, SexMale, TierInDanger},
		{3, 25, SexMale, TierInDanger},
		{2, 25, SexMale, TierNone},
		{7, 25, SexFemale, TierEarlyOnset},
		{6, 25, SexFemale, TierInDanger},
		{4, 25, SexFemale, TierInDanger},
		{3, 25, SexFemale, TierNone},
		{8, 35, SexMale, TierEarlyOnset},
		{7, 35, SexMale, TierInDanger},
		{6, 35, SexFemale, TierInDanger},
		{5, 35, SexUnknown, TierBorderline},
		{2, 35, SexUnknown, TierBorderline},
		{1, 35, SexUnknown, TierNone},
		{0, 30, SexMale, TierNone},
		{2, 30, SexMale, TierBorderline},
		{8, 30, SexUnknown, TierEarlyOnset},
		{5, 29, SexMale, TierEarlyOnset},
		{7, 29, SexFemale, TierEarlyOnset},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("count=%d/age=%d/%s", tt.count, tt.age, tt.sex), func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.count, tt.age, tt.sex))
		})
	}
}

func TestClassify_UnknownSexUnderThirtyIsAlwaysNone(t *testing.T) {
	for age := 0; age < 30; age++ {
		for count := 0; count <= 50; count++ {
			require.Equal(t, TierNone, Classify(count, age, SexUnknown), "count=%d age=%d", count, age)
		}
	}
}

func TestClassify_NoBorderlineUnderThirty(t *testing.T) {
	for _, sex := range []Sex{SexUnknown, SexMale, SexFemale} {
		for age := 0; age < 30; age++ {
			for count := 0; count <= 20; count++ {
				require.NotEqual(t, TierBorderline, Classify(count, age, sex))
			}
		}
	}
}

func TestClassify_TotalAndDeterministic(t *testing.T) {
	for _, sex := range []Sex{SexUnknown, SexMale, SexFemale} {
		for age := 0; age <= 100; age++ {
			for count := 0; count <= 20; count++ {
				first := Classify(count, age, sex)
				require.Contains(t, []Tier{TierNone, TierBorderline, TierInDanger, TierEarlyOnset}, first)
				require.Equal(t, first, Classify(count, age, sex))
			}
		}
	}
}

// ruleTable transcribes the rule table row by row, most severe tier first.
func ruleTable(count, age int, sex Sex) Tier {
	young := age < 30
	male := sex == SexMale
	female := sex == SexFemale
	switch {
	case male && young && count >= 5,
		female && young && count >= 7,
		!young && count >= 8:
		return TierEarlyOnset
	case male && young && count >= 3,
		female && young && count >= 4,
		!young && (count == 6 || count == 7):
		return TierInDanger
	case !young && count >= 2 && count <= 5:
		return TierBorderline
	default:
		return TierNone
	}
}

func TestClassify_MatchesRuleTable(t *testing.T) {
	for _, sex := range []Sex{SexUnknown, SexMale, SexFemale} {
		for age := 0; age <= 100; age++ {
			for count := 0; count <= 20; count++ {
				require.Equal(t, ruleTable(count, age, sex), Classify(count, age, sex),
					"count=%d age=%d sex=%s", count, age, sex)
			}
		}
	}
}

func TestClassify_EarlyOnsetTakesPrecedence(t *testing.T) {
	// Counts that satisfy both the InDanger and EarlyOnset thresholds.
	assert.Equal(t, TierEarlyOnset, Classify(6, 20, SexMale))
	assert.Equal(t, TierEarlyOnset, Classify(9, 20, SexFemale))
	assert.Equal(t, TierEarlyOnset, Classify(20, 29, SexMale))
	assert.Equal(t, TierInDanger, Classify(4, 29, SexMale))
	assert.Equal(t, TierInDanger, Classify(6, 29, SexFemale))
}

func TestClassify_AgeThirtyAndOverCoversEveryCount(t *testing.T) {
	want := map[int]Tier{0: TierNone, 1: TierNone, 2: TierBorderline, 3: TierBorderline,
		4: TierBorderline, 5: TierBorderline, 6: TierInDanger, 7: TierInDanger, 8: TierEarlyOnset, 12: TierEarlyOnset}
	for count, tier := range want {
		for _, sex := range []Sex{SexUnknown, SexMale, SexFemale} {
			assert.Equal(t, tier, Classify(count, 45, sex), "count=%d sex=%s", count, sex)
		}
	}
}

func TestParseSex(t *testing.T) {
	assert.Equal(t, SexMale, ParseSex("masculin"))
	assert.Equal(t, SexMale, ParseSex("MASCULIN"))
	assert.Equal(t, SexFemale, ParseSex("Feminin"))
	assert.Equal(t, SexFemale, ParseSex(" feminin "))
	assert.Equal(t, SexUnknown, ParseSex("féminin"))
	assert.Equal(t, SexUnknown, ParseSex("M"))
	assert.Equal(t, SexUnknown, ParseSex(""))
}

func TestTier_Rendering(t *testing.T) {
	assert.Equal(t, "None", TierNone.String())
	assert.Equal(t, "Borderline", TierBorderline.String())
	assert.Equal(t, "In Danger", TierInDanger.String())
	assert.Equal(t, "Early onset", TierEarlyOnset.String())
	assert.Equal(t, PatientNotFoundLabel, TierPatientNotFound.String())

	b, err := json.Marshal(TierInDanger)
	require.NoError(t, err)
	assert.JSONEq(t, `"in_danger"`, string(b))
}
