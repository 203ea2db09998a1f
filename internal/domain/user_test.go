package domain

import "testing"

func TestStudyTime_IsValid(t *testing.T) {
	valid := []StudyTime{Morning, Afternoon, Evening, Night, Flexible}
	for _, v := range valid {
		if !v.IsValid() {
			t.Errorf("expected %q to be valid", v)
		}
	}

	invalid := []StudyTime{"", "noon", "MORNING ", "anytime"}
	for _, v := range invalid {
		if v.IsValid() {
			t.Errorf("expected %q to be invalid", v)
		}
	}
}

func TestTeamPref_IsValid(t *testing.T) {
	if !Solo.IsValid() || !Team.IsValid() {
		t.Error("expected solo and team to be valid")
	}
	for _, v := range []TeamPref{"", "pair", "Team"} {
		if v.IsValid() {
			t.Errorf("expected %q to be invalid", v)
		}
	}
}
