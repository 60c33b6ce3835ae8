package shared_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"meetspace/shared"
	"meetspace/shared/constant"
	"meetspace/shared/dto"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestConvertStringToBool(t *testing.T) {
	assert.Nil(t, shared.ConvertStringToBool(""))
	assert.Nil(t, shared.ConvertStringToBool("maybe"))

	for _, in := range []string{"true", "1", "T", "TRUE"} {
		res := shared.ConvertStringToBool(in)
		if assert.NotNil(t, res, in) {
			assert.True(t, *res, in)
		}
	}

	for _, in := range []string{"false", "0", "f"} {
		res := shared.ConvertStringToBool(in)
		if assert.NotNil(t, res, in) {
			assert.False(t, *res, in)
		}
	}
}

func TestConvertStringToInt(t *testing.T) {
	val, err := shared.ConvertStringToInt(" 12 ")
	assert.NoError(t, err)
	assert.Equal(t, 12, val)

	_, err = shared.ConvertStringToInt("twelve")
	assert.Error(t, err)
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		total, limit, expected int
	}{
		{total: 0, limit: 10, expected: 1},
		{total: 100, limit: 0, expected: 1},
		{total: 100, limit: -5, expected: 1},
		{total: 100, limit: 10, expected: 10},
		{total: 101, limit: 10, expected: 11},
		{total: 5, limit: 10, expected: 1},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d/%d", tt.total, tt.limit), func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

func TestTransformFields(t *testing.T) {
	type update struct {
		Title   string  `db:"title"`
		Note    *string `db:"description"`
		Empty   string  `db:"empty"`
		Skipped string  `db:"-"`
		NoTag   string
	}

	note := ""
	res := shared.TransformFields(update{Title: "Standup", Note: &note, Skipped: "x", NoTag: "y"}, "user-1")

	assert.Equal(t, "Standup", res["title"])
	assert.Equal(t, &note, res["description"])
	assert.NotContains(t, res, "empty")
	assert.NotContains(t, res, "-")
	assert.Equal(t, "user-1", res[constant.FieldModifiedBy])
	assert.IsType(t, time.Time{}, res[constant.FieldModifiedAt])
	assert.Len(t, res, 4)
}

func TestFilterByID(t *testing.T) {
	res := shared.FilterByID("abc", "id", "meetings")

	assert.Equal(t, dto.FilterGroup{
		Filters: []dto.Clause{
			dto.Filter{Field: "id", Value: "abc", Operator: dto.FilterOperatorEq, Table: "meetings"},
		},
	}, res)
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "meeting:get", shared.BuildCacheKey("meeting:get"))
	assert.Equal(t, "meeting:get:abc", shared.BuildCacheKey("meeting:get", "abc"))
	assert.Equal(t, "limiter:1.2.3.4:curl", shared.BuildCacheKey("limiter", "1.2.3.4", "curl"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10, SortBy: "date", SortDir: dto.SortDirAsc}
	roomA := dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd, Filters: []dto.Clause{
		dto.Filter{Field: "room_id", Value: "room-a", Operator: dto.FilterOperatorEq},
	}}
	roomB := dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd, Filters: []dto.Clause{
		dto.Filter{Field: "room_id", Value: "room-b", Operator: dto.FilterOperatorEq},
	}}

	keyA := shared.BuildCacheKeyWithQuery("meeting:gets", params, roomA)

	assert.Equal(t, keyA, shared.BuildCacheKeyWithQuery("meeting:gets", params, roomA))
	assert.NotEqual(t, keyA, shared.BuildCacheKeyWithQuery("meeting:gets", params, roomB))
	assert.Contains(t, keyA, "meeting:gets:1:10:date:ASC:")
}

func TestIsPqError(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pq.Error{Code: constant.PqErrorCodeExclusionViolation})

	assert.True(t, shared.IsPqError(err, constant.PqErrorCodeExclusionViolation))
	assert.False(t, shared.IsPqError(err, constant.PqErrorCodeUniqueViolation))
	assert.False(t, shared.IsPqError(errors.New("plain"), constant.PqErrorCodeExclusionViolation))
}
