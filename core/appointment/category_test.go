package appointment

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in      string
		want    Category
		wantErr error
	}{
		{in: "1", want: CategoryAcademicResearch},
		{in: "2", want: CategoryStudyGroup},
		{in: " 3 ", want: CategoryCulture},
		{in: "4", want: CategorySports},
		{in: "5", want: CategorySolidarity},
		{in: "0", wantErr: ErrInvalidCategory},
		{in: "6", wantErr: ErrInvalidCategory},
		{in: "", wantErr: ErrInvalidCategory},
		{in: "research", wantErr: ErrInvalidCategory},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCategory(tt.in)
			assert.Equal(t, tt.wantErr, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRequirementsFor(t *testing.T) {
	research := Requirements{Fields: []string{"title", "search_area"}, Course: true}
	activity := Requirements{Fields: []string{"banner", "title", "phrase", "location"}, Schedule: true}
	solidarity := Requirements{Fields: []string{"banner", "description"}}

	tests := []struct {
		c              Category
		want           Requirements
		wantCollection string
	}{
		{c: CategoryAcademicResearch, want: research, wantCollection: "academic_research"},
		{c: CategoryStudyGroup, want: activity, wantCollection: "actitivity_student"},
		{c: CategoryCulture, want: activity, wantCollection: "actitivity_student"},
		{c: CategorySports, want: activity, wantCollection: "actitivity_student"},
		{c: CategorySolidarity, want: solidarity, wantCollection: "solidarity"},
		{c: Category(9), want: Requirements{}, wantCollection: ""},
	}
	for _, tt := range tests {
		t.Run(tt.c.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, RequirementsFor(tt.c))
			assert.Equal(t, tt.wantCollection, tt.c.Collection())
		})
	}
}

func TestCategory_JSON(t *testing.T) {
	raw, err := json.Marshal(CategoryStudyGroup)
	if assert.NoError(t, err) {
		assert.Equal(t, `"2"`, string(raw))
	}

	tests := []struct {
		in      string
		want    Category
		wantErr bool
	}{
		{in: `"2"`, want: CategoryStudyGroup},
		{in: `5`, want: CategorySolidarity},
		{in: `""`, want: 0},
		{in: `"9"`, want: Category(9)}, // left to validation
		{in: `"lol"`, wantErr: true},
		{in: `true`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var c Category
			err := json.Unmarshal([]byte(tt.in), &c)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			if assert.NoError(t, err) {
				assert.Equal(t, tt.want, c)
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	for _, shape := range []Shape{ShapeAcademicResearch, ShapeActivity, ShapeSolidarity} {
		got, err := ParseKind(shape.Kind())
		assert.NoError(t, err)
		assert.Equal(t, shape, got)
	}
	_, err := ParseKind("users")
	assert.Equal(t, ErrInvalidKind, err)
}

func TestCategories(t *testing.T) {
	assert.Len(t, Categories, 5)
	for _, info := range Categories {
		assert.True(t, info.ID.IsValid())
		assert.NotEmpty(t, info.Title)
		assert.Equal(t, info.ID.Shape().Kind(), info.Shape)
	}
}
