package labdesk

import "github.com/blutspende/labdesk/utils"

// FormState - Editable values of one lab request form, keyed by parameter name in catalog order.
// A FormState belongs to a single request and is not safe for concurrent use.
type FormState struct {
	testType   TestType
	parameters []ParameterDefinition
	values     map[string]string
}

// InitializeForm builds a fresh blank form for the test type. Repeated calls never share state.
func InitializeForm(testType TestType) FormState {
	parameters := LookupParameters(testType)
	values := make(map[string]string, len(parameters))
	for _, parameter := range parameters {
		values[parameter.Name] = ""
	}
	return FormState{
		testType:   testType,
		parameters: parameters,
		values:     values,
	}
}

func (f FormState) TestType() TestType {
	return f.testType
}

func (f FormState) Parameters() []ParameterDefinition {
	parameters := make([]ParameterDefinition, len(f.parameters))
	copy(parameters, f.parameters)
	return parameters
}

// Set edits a single field in place. Names that are not parameters of the test type are rejected.
func (f *FormState) Set(name, value string) bool {
	if _, ok := f.values[name]; !ok {
		return false
	}
	f.values[name] = value
	return true
}

func (f FormState) Get(name string) (string, bool) {
	value, ok := f.values[name]
	return value, ok
}

func (f FormState) Names() []string {
	names := make([]string, 0, len(f.parameters))
	for _, parameter := range f.parameters {
		names = append(names, parameter.Name)
	}
	return names
}

func (f FormState) Len() int {
	return len(f.parameters)
}

func (f FormState) Values() map[string]string {
	values := make(map[string]string, len(f.values))
	for name, value := range f.values {
		values[name] = value
	}
	return values
}

// Apply sets all values and reports the first name that is not part of the form
func (f *FormState) Apply(values map[string]string) (string, bool) {
	for _, name := range utils.SortedKeys(values) {
		if !f.Set(name, values[name]) {
			return name, false
		}
	}
	return "", true
}

// Entries returns every field with its live classification, in catalog order
func (f FormState) Entries() []ResultEntry {
	entries := make([]ResultEntry, 0, len(f.parameters))
	for _, parameter := range f.parameters {
		value := f.values[parameter.Name]
		entries = append(entries, ResultEntry{
			Parameter: parameter.Name,
			Value:     value,
			Unit:      parameter.Unit,
			Low:       parameter.Low,
			High:      parameter.High,
			Status:    ClassifyParameter(parameter, value),
		})
	}
	return entries
}
