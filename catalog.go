package labdesk

import (
	"fmt"
	"strconv"

	"github.com/blutspende/labdesk/utils"
)

var testTypes = []TestType{
	BloodTest,
	UrineTest,
	LiverFunctionTest,
	KidneyFunctionTest,
	ECG,
	XRay,
	MRI,
}

var parameterCatalog = map[TestType][]ParameterDefinition{
	BloodTest: {
		bounded("Hemoglobin (Hb)", "g/dL", 12, 16),
		bounded("RBC Count", "million/µL", 4.0, 5.2),
		bounded("WBC Count", "cells/µL", 4000, 11000),
		bounded("Platelets", "/µL", 150000, 450000),
		bounded("Hematocrit (PCV)", "%", 36, 46),
		bounded("MCV", "fL", 80, 100),
		bounded("MCH", "pg", 27, 34),
		bounded("MCHC", "g/dL", 32, 36),
	},
	UrineTest: {
		bounded("pH", "", 4, 8),
		bounded("Protein", "mg/dL", 0, 20),
		bounded("Glucose", "mg/dL", 0, 15),
		bounded("Specific Gravity", "", 1.005, 1.030),
	},
	LiverFunctionTest: {
		bounded("Bilirubin Total", "mg/dL", 0.3, 1.2),
		bounded("SGOT (AST)", "U/L", 5, 40),
		bounded("SGPT (ALT)", "U/L", 7, 56),
		bounded("Alkaline Phosphatase", "U/L", 44, 147),
	},
	KidneyFunctionTest: {
		bounded("Creatinine", "mg/dL", 0.6, 1.3),
		bounded("Blood Urea", "mg/dL", 7, 20),
		bounded("Uric Acid", "mg/dL", 3.5, 7.2),
	},
	ECG: {
		bounded("Heart Rate", "bpm", 60, 100),
		bounded("PR Interval", "ms", 120, 200),
		bounded("QT Interval", "ms", 350, 440),
	},
	XRay: {
		text("Radiologist Findings"),
	},
	MRI: {
		text("Radiologist Findings"),
	},
}

func bounded(name, unit string, low, high float64) ParameterDefinition {
	return ParameterDefinition{Name: name, Unit: unit, Low: ptr(low), High: ptr(high)}
}

func text(name string) ParameterDefinition {
	return ParameterDefinition{Name: name, IsText: true}
}

// LookupParameters returns the ordered parameters of a test type. Unknown test types have no parameters.
func LookupParameters(testType TestType) []ParameterDefinition {
	definitions := parameterCatalog[testType]
	parameters := make([]ParameterDefinition, len(definitions))
	copy(parameters, definitions)
	return parameters
}

func FindParameter(testType TestType, name string) (ParameterDefinition, bool) {
	for _, definition := range parameterCatalog[testType] {
		if definition.Name == name {
			return definition, true
		}
	}
	return ParameterDefinition{}, false
}

func TestTypes() []TestType {
	types := make([]TestType, len(testTypes))
	copy(types, testTypes)
	return types
}

func (t TestType) IsKnown() bool {
	return utils.SliceContains(t, testTypes)
}

func (p ParameterDefinition) HasBounds() bool {
	return p.Low != nil && p.High != nil
}

// NormalRange formats the reference bounds for display, "-" when the parameter has none
func (p ParameterDefinition) NormalRange() string {
	return formatRange(p.Low, p.High)
}

func formatRange(low, high *float64) string {
	if low == nil || high == nil {
		return "-"
	}
	return fmt.Sprintf("%s - %s", formatBound(*low), formatBound(*high))
}

func formatBound(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
