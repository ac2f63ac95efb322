package scoring

import (
	"testing"
	"time"

	"github.com/sanctionsscore/core/pkg/entity"
)

func TestCompareDateBands(t *testing.T) {
	base := time.Date(1999, 3, 15, 0, 0, 0, 0, time.UTC)
	cmp := NewDateComparer()

	tests := []struct {
		name  string
		other time.Time
		want  float64
	}{
		{"exact", base, 1.0},
		{"within a month", base.AddDate(0, 0, 20), 0.8},
		{"within two years", base.AddDate(1, 0, 0), 0.5},
		{"beyond two years", base.AddDate(5, 0, 0), 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := base, tt.other
			piece := cmp.CompareDate(&a, &b)
			if piece.Score != tt.want {
				t.Errorf("CompareDate score = %v, want %v", piece.Score, tt.want)
			}
		})
	}
}

func TestCompareDateNilIsUncompared(t *testing.T) {
	cmp := NewDateComparer()
	base := time.Now()
	piece := cmp.CompareDate(nil, &base)
	if piece.FieldsCompared != 0 {
		t.Errorf("FieldsCompared = %d, want 0 when one side is nil", piece.FieldsCompared)
	}
}

func TestCompareAllDatesAveragesPresentFields(t *testing.T) {
	cmp := NewDateComparer()
	dob := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	deceased := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	a := entity.Entity{Type: entity.TypePerson, Person: &entity.Person{DOB: &dob, Deceased: &deceased}}
	b := entity.Entity{Type: entity.TypePerson, Person: &entity.Person{DOB: &dob}}

	piece := cmp.CompareAllDates(a, b)
	if piece.FieldsCompared != 1 {
		t.Errorf("FieldsCompared = %d, want 1 (only dob present on both sides)", piece.FieldsCompared)
	}
	if piece.Score != 1.0 {
		t.Errorf("Score = %v, want 1.0 for identical dob", piece.Score)
	}
}

func TestCompareAllDatesNoOverlap(t *testing.T) {
	cmp := NewDateComparer()
	a := entity.Entity{Type: entity.TypeAircraft, Aircraft: &entity.Aircraft{}}
	b := entity.Entity{Type: entity.TypeAircraft, Aircraft: &entity.Aircraft{}}

	piece := cmp.CompareAllDates(a, b)
	if piece.FieldsCompared != 0 {
		t.Errorf("FieldsCompared = %d, want 0 when neither side has dates set", piece.FieldsCompared)
	}
}
