package labdesk

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	msgDecodeResultDetailsFailed = "decode result details failed, showing no data"
	msgUnexpectedResultShape     = "result details are neither an entry list nor an entry map"
)

// ValidateForm returns a MissingValueError for the first parameter, in catalog order, without a value.
// Free-text findings are required as well.
func ValidateForm(state FormState) error {
	for _, parameter := range state.parameters {
		if strings.TrimSpace(state.values[parameter.Name]) == "" {
			return &MissingValueError{Parameter: parameter.Name}
		}
	}
	return nil
}

// EncodeResultDetails serializes the form as the result_details entry list, in catalog order.
// Nothing is encoded while ValidateForm fails.
func EncodeResultDetails(state FormState) (string, error) {
	if err := ValidateForm(state); err != nil {
		return "", err
	}

	data, err := json.Marshal(state.Entries())
	if err != nil {
		return "", errors.Wrap(err, "marshal result details")
	}
	return string(data), nil
}

// DecodeResultDetails reads both stored shapes, the entry list and the map keyed by parameter name.
// Statuses are always recomputed. Anything unreadable decodes to no entries.
func DecodeResultDetails(resultDetails string) []ResultEntry {
	entries, err := decodeResultDetails(resultDetails)
	if err != nil {
		log.Warn().Err(err).Msg(msgDecodeResultDetailsFailed)
		return []ResultEntry{}
	}
	return entries
}

func decodeResultDetails(resultDetails string) ([]ResultEntry, error) {
	trimmed := strings.TrimSpace(resultDetails)
	if trimmed == "" || trimmed == "null" {
		return []ResultEntry{}, nil
	}

	switch trimmed[0] {
	case '[':
		return decodeEntryList(trimmed)
	case '{':
		return decodeEntryMap(trimmed)
	}
	return nil, errors.New(msgUnexpectedResultShape)
}

func decodeEntryList(data string) ([]ResultEntry, error) {
	var storedEntries []storedEntryTO
	if err := json.Unmarshal([]byte(data), &storedEntries); err != nil {
		return nil, errors.Wrap(err, "decode entry list")
	}

	entries := make([]ResultEntry, 0, len(storedEntries))
	for i, storedEntry := range storedEntries {
		if strings.TrimSpace(storedEntry.Parameter) == "" {
			log.Warn().Int("index", i).Msg("skipping stored entry without parameter name")
			continue
		}
		entries = append(entries, storedEntry.toResultEntry(storedEntry.Parameter))
	}
	return entries, nil
}

// decodeEntryMap walks the object token by token so that entries keep the order of the document.
// A repeated key replaces the earlier value but keeps its position.
func decodeEntryMap(data string) ([]ResultEntry, error) {
	decoder := json.NewDecoder(strings.NewReader(data))

	if _, err := decoder.Token(); err != nil {
		return nil, errors.Wrap(err, "decode entry map")
	}

	entries := make([]ResultEntry, 0)
	positions := make(map[string]int)
	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return nil, errors.Wrap(err, "decode entry map key")
		}
		name, ok := token.(string)
		if !ok {
			return nil, errors.Errorf("unexpected entry map key %v", token)
		}

		var raw json.RawMessage
		if err = decoder.Decode(&raw); err != nil {
			return nil, errors.Wrapf(err, "decode entry map value of %q", name)
		}
		storedEntry, err := parseMapValue(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "decode entry map value of %q", name)
		}

		entry := storedEntry.toResultEntry(name)
		if position, exists := positions[name]; exists {
			entries[position] = entry
			continue
		}
		positions[name] = len(entries)
		entries = append(entries, entry)
	}

	if _, err := decoder.Token(); err != nil {
		return nil, errors.Wrap(err, "decode entry map end")
	}
	if _, err := decoder.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after entry map")
	}
	return entries, nil
}

// parseMapValue accepts the object form {value, unit, low, high} and a bare value
func parseMapValue(raw json.RawMessage) (storedEntryTO, error) {
	var storedEntry storedEntryTO
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		err := json.Unmarshal(trimmed, &storedEntry)
		return storedEntry, err
	}
	err := json.Unmarshal(trimmed, &storedEntry.Value)
	return storedEntry, err
}

type storedEntryTO struct {
	Parameter string        `json:"parameter"`
	Value     lenientString `json:"value"`
	Unit      lenientString `json:"unit"`
	Low       lenientBound  `json:"low"`
	High      lenientBound  `json:"high"`
}

func (s storedEntryTO) toResultEntry(name string) ResultEntry {
	value := string(s.Value)
	return ResultEntry{
		Parameter: name,
		Value:     value,
		Unit:      string(s.Unit),
		Low:       s.Low.value,
		High:      s.High.value,
		Status:    Classify(value, s.Low.value, s.High.value),
	}
}

// lenientString takes strings, numbers and booleans as their text, null as empty
type lenientString string

func (s *lenientString) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0 || string(trimmed) == "null":
		*s = ""
		return nil
	case trimmed[0] == '"':
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return err
		}
		*s = lenientString(text)
		return nil
	case string(trimmed) == "true" || string(trimmed) == "false":
		*s = lenientString(trimmed)
		return nil
	}

	var number json.Number
	if err := json.Unmarshal(trimmed, &number); err != nil {
		return err
	}
	*s = lenientString(number.String())
	return nil
}

// lenientBound takes numbers and numeric strings. Everything else is an absent bound.
type lenientBound struct {
	value *float64
}

func (b *lenientBound) UnmarshalJSON(data []byte) error {
	b.value = nil

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil
	}

	text := string(trimmed)
	if trimmed[0] == '"' {
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return nil
		}
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return nil
	}
	b.value = &value
	return nil
}
