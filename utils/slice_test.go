package utils_test

import (
	"testing"

	"github.com/blutspende/labdesk/utils"

	"github.com/stretchr/testify/assert"
)

func TestSliceContains(t *testing.T) {

	parameters := []string{"Hemoglobin (Hb)", "RBC Count", "WBC Count", "Platelets",
		"Hematocrit (PCV)", "MCV", "MCH", "MCHC"}

	assert.True(t, utils.SliceContains("MCV", parameters))

	assert.False(t, utils.SliceContains("mcv", parameters))
}

func TestSortedKeys(t *testing.T) {
	values := map[string]string{
		"pH":               "7",
		"Glucose":          "3",
		"Specific Gravity": "1.01",
		"Protein":          "5",
	}

	assert.Equal(t, []string{"Glucose", "Protein", "Specific Gravity", "pH"}, utils.SortedKeys(values))
	assert.Empty(t, utils.SortedKeys(map[string]int{}))
}
