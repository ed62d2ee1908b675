package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	d := NewDate(2023, time.March, 7)
	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2023-03-07"`, string(b))

	var parsed Date
	require.NoError(t, json.Unmarshal([]byte(`"2021-11-30"`), &parsed))
	assert.Equal(t, NewDate(2021, time.November, 30), parsed)

	assert.Error(t, json.Unmarshal([]byte(`"30/11/2021"`), &parsed))
}

func TestWorkExperienceNullEndDate(t *testing.T) {
	exp := WorkExperience{ID: "exp-1", StartDate: NewDate(2024, time.January, 1), Current: true}
	b, err := json.Marshal(exp)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"data_fim":null`)
	assert.Contains(t, string(b), `"data_inicio":"2024-01-01"`)
}

func TestNewWorkExperience(t *testing.T) {
	start := NewDate(2022, time.May, 1)
	end := NewDate(2023, time.June, 1)
	before := NewDate(2021, time.January, 1)

	t.Run("current without end date", func(t *testing.T) {
		_, err := NewWorkExperience(WorkExperience{ID: "a", StartDate: start, Current: true})
		assert.NoError(t, err)
	})

	t.Run("past with end date", func(t *testing.T) {
		_, err := NewWorkExperience(WorkExperience{ID: "a", StartDate: start, EndDate: &end})
		assert.NoError(t, err)
	})

	t.Run("current with end date", func(t *testing.T) {
		_, err := NewWorkExperience(WorkExperience{ID: "a", StartDate: start, EndDate: &end, Current: true})
		assert.ErrorIs(t, err, ErrEndDateOnCurrent)
	})

	t.Run("past without end date", func(t *testing.T) {
		_, err := NewWorkExperience(WorkExperience{ID: "a", StartDate: start})
		assert.ErrorIs(t, err, ErrMissingEndDate)
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := NewWorkExperience(WorkExperience{ID: "a", StartDate: start, EndDate: &before})
		assert.ErrorIs(t, err, ErrEndBeforeStart)
	})

	t.Run("same day start and end", func(t *testing.T) {
		same := start
		_, err := NewWorkExperience(WorkExperience{ID: "a", StartDate: start, EndDate: &same})
		assert.NoError(t, err)
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := NewWorkExperience(WorkExperience{StartDate: start, Current: true})
		assert.ErrorIs(t, err, ErrMissingExperience)
	})
}

func TestStackGroupsKeepOrder(t *testing.T) {
	groups := StackGroups{
		{Category: "frontend", Items: []StackItem{{Name: "React", Category: "frontend", Level: 3}}},
		{Category: "backend", Items: []StackItem{{Name: "Go", Category: "backend", Level: 4}}},
		{Category: "devops"},
	}

	b, err := json.Marshal(groups)
	require.NoError(t, err)
	assert.Equal(t,
		`{"frontend":[{"nome":"React","categoria":"frontend","nivel":3,"icone":null}],`+
			`"backend":[{"nome":"Go","categoria":"backend","nivel":4,"icone":null}],"devops":[]}`,
		string(b))

	require.Len(t, groups, 3)
	assert.Equal(t, "backend", groups[1].Category)
	assert.Equal(t, "Go", groups[1].Items[0].Name)
}

func TestEmptyStackGroups(t *testing.T) {
	b, err := json.Marshal(StackGroups{})
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(b))
}
