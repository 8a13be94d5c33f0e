package reference

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Built-in copies of the reference tables so the library works without any
// deployed configuration. A path-based load overrides them wholesale.
var (
	//go:embed contract_types.yml
	defaultTypesYAML []byte

	//go:embed contract_categories.yml
	defaultCategoriesYAML []byte
)

// LoadTypes reads a contract-type table from a YAML file.
func LoadTypes(path string) (*TypeTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseTypes(data)
}

// LoadCategories reads a contract-category table from a YAML file.
func LoadCategories(path string) (*CategoryTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseCategories(data)
}

// DefaultTypes returns the embedded contract-type table.
func DefaultTypes() *TypeTable {
	table, err := parseTypes(defaultTypesYAML)
	if err != nil {
		// The embedded table is part of the build; failing to parse it is
		// a packaging bug, not a runtime condition.
		panic(fmt.Sprintf("reference: embedded contract_types.yml: %v", err))
	}
	return table
}

// DefaultCategories returns the embedded contract-category table.
func DefaultCategories() *CategoryTable {
	table, err := parseCategories(defaultCategoriesYAML)
	if err != nil {
		panic(fmt.Sprintf("reference: embedded contract_categories.yml: %v", err))
	}
	return table
}

func parseTypes(data []byte) (*TypeTable, error) {
	raw := map[string]TypeFacts{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true) // 알 수 없는 필드 발견 시 에러 반환
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("contract types: %w", err)
	}

	types := make(map[string]TypeFacts, len(raw))
	for code, facts := range raw {
		code = strings.ToUpper(code)
		facts.Code = code
		if err := validateType(facts); err != nil {
			return nil, fmt.Errorf("contract type %s: %w", code, err)
		}
		types[code] = facts
	}
	return &TypeTable{types: types}, nil
}

func parseCategories(data []byte) (*CategoryTable, error) {
	raw := map[string]CategoryFacts{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("contract categories: %w", err)
	}

	categories := make(map[string]CategoryFacts, len(raw))
	for code, facts := range raw {
		facts.Code = code
		if err := validateCategory(facts); err != nil {
			return nil, fmt.Errorf("contract category %s: %w", code, err)
		}
		categories[code] = facts
	}
	return &CategoryTable{categories: categories}, nil
}

func validateType(facts TypeFacts) error {
	if facts.ID == 0 {
		return fmt.Errorf("id is required")
	}
	if facts.Category == "" {
		return fmt.Errorf("category is required")
	}
	if facts.PayoutType != "binary" && facts.PayoutType != "non-binary" {
		return fmt.Errorf("payout_type must be binary or non-binary, got %q", facts.PayoutType)
	}
	if facts.PayoutTime != "end" && facts.PayoutTime != "hit" {
		return fmt.Errorf("payouttime must be end or hit, got %q", facts.PayoutTime)
	}
	return nil
}

func validateCategory(facts CategoryFacts) error {
	if len(facts.SupportedExpiries) == 0 {
		return fmt.Errorf("supported_expiries is required")
	}
	for _, e := range facts.SupportedExpiries {
		if e != "intraday" && e != "daily" && e != "tick" {
			return fmt.Errorf("unknown expiry kind %q", e)
		}
	}
	return nil
}
