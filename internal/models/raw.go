package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrSchema reports an engine answer that does not satisfy any known contract.
var ErrSchema = errors.New("response does not match the nutrition schema")

// LegacyNutrients is the nutrient group of the v1 contract.
type LegacyNutrients struct {
	Calorias  *float64 `json:"calorias"`
	Proteinas *float64 `json:"proteinas"`
	Grasas    *float64 `json:"grasas"`
	Agua      *float64 `json:"agua"`
}

// LegacyOutput is the v1 contract.
type LegacyOutput struct {
	Alimento   string           `json:"alimento"`
	Porcion    string           `json:"porcion"`
	Nutrientes *LegacyNutrients `json:"nutrientes"`
}

// UnifiedOutput is the v2 contract. Nutrients are pointers so that an
// omitted or null value can be told apart from an explicit zero.
type UnifiedOutput struct {
	Name    string   `json:"name"`
	Portion string   `json:"portion,omitempty"`
	Energy  *float64 `json:"energy"`
	Protein *float64 `json:"protein"`
	Fats    *float64 `json:"fats"`
	Water   *float64 `json:"water"`
}

// RawOutput is a validated engine answer in exactly one of the known shapes.
type RawOutput struct {
	Version string
	Legacy  *LegacyOutput
	Unified *UnifiedOutput
}

// DecodeRawOutput validates an engine answer and returns it in its detected
// shape. The whole nutrient group missing is a schema error; a single
// nutrient missing or null inside a present group is accepted and left nil.
func DecodeRawOutput(data []byte) (*RawOutput, error) {
	var rawMap map[string]json.RawMessage
	if err := json.Unmarshal(data, &rawMap); err != nil {
		return nil, fmt.Errorf("%w: not a JSON object: %v", ErrSchema, err)
	}

	if _, ok := rawMap["nutrientes"]; ok {
		return decodeLegacy(data)
	}
	if _, ok := rawMap["name"]; ok {
		return decodeUnified(data, rawMap)
	}
	if _, ok := rawMap["alimento"]; ok {
		return nil, fmt.Errorf("%w: missing nutrient group 'nutrientes'", ErrSchema)
	}
	return nil, fmt.Errorf("%w: unrecognized response shape", ErrSchema)
}

func decodeLegacy(data []byte) (*RawOutput, error) {
	var out LegacyOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchema, err)
	}
	if strings.TrimSpace(out.Alimento) == "" {
		return nil, fmt.Errorf("%w: missing required field 'alimento'", ErrSchema)
	}
	if out.Nutrientes == nil {
		return nil, fmt.Errorf("%w: missing nutrient group 'nutrientes'", ErrSchema)
	}

	n := out.Nutrientes
	if err := checkNonNegative(map[string]*float64{
		"calorias":  n.Calorias,
		"proteinas": n.Proteinas,
		"grasas":    n.Grasas,
		"agua":      n.Agua,
	}); err != nil {
		return nil, err
	}

	return &RawOutput{Version: SchemaVersionLegacy, Legacy: &out}, nil
}

func decodeUnified(data []byte, rawMap map[string]json.RawMessage) (*RawOutput, error) {
	var out UnifiedOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchema, err)
	}
	if strings.TrimSpace(out.Name) == "" {
		return nil, fmt.Errorf("%w: missing required field 'name'", ErrSchema)
	}

	// The flat contract has no group object; at least one nutrient key
	// must be present for the group to count as present.
	present := false
	for _, key := range []string{"energy", "protein", "fats", "water"} {
		if _, ok := rawMap[key]; ok {
			present = true
			break
		}
	}
	if !present {
		return nil, fmt.Errorf("%w: no nutrient fields in response", ErrSchema)
	}

	if err := checkNonNegative(map[string]*float64{
		"energy":  out.Energy,
		"protein": out.Protein,
		"fats":    out.Fats,
		"water":   out.Water,
	}); err != nil {
		return nil, err
	}

	return &RawOutput{Version: SchemaVersionUnified, Unified: &out}, nil
}

func checkNonNegative(fields map[string]*float64) error {
	for name, v := range fields {
		if v != nil && *v < 0 {
			return fmt.Errorf("%w: field '%s' is negative (%g)", ErrSchema, name, *v)
		}
	}
	return nil
}
