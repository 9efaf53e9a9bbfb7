package errors

import (
	"strings"
	"unicode"

	"github.com/strataviz/harris/pkg/strata"
)

// validUnitTypes is the set of unit types accepted at the input boundary.
var validUnitTypes = map[strata.UnitType]bool{
	strata.TypeLayer:  true,
	strata.TypeAshPit: true,
	strata.TypeTomb:   true,
	strata.TypeHouse:  true,
	strata.TypeKiln:   true,
	strata.TypeWell:   true,
	strata.TypeWall:   true,
	strata.TypeOther:  true,
}

// validRelationTypes is the set of relation types accepted at the input boundary.
var validRelationTypes = map[strata.RelationType]bool{
	strata.RelCuts:     true,
	strata.RelOverlays: true,
	strata.RelSameAs:   true,
	strata.RelPartOf:   true,
}

// ValidateUnitID validates a unit identifier for safety and correctness.
//
// The layout engine itself tolerates any non-empty string, so these rules
// guard the CLI and API boundaries only:
//   - No empty IDs
//   - No control characters
//   - Maximum length of 128 characters
func ValidateUnitID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidMatrix, "unit id cannot be empty")
	}
	if len(id) > 128 {
		return New(ErrCodeInvalidMatrix, "unit id too long (max 128 characters)")
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidMatrix, "unit id contains control characters")
		}
	}
	return nil
}

// ValidateMatrix validates raw stratigraphic input at the CLI/API boundary.
// It checks unit IDs, type enums, and ID uniqueness. It does NOT reject
// dangling relation endpoints or opening-layer references: those are legal
// partial field data that the engine silently drops.
func ValidateMatrix(m strata.Matrix) error {
	if len(m.Units) == 0 {
		return New(ErrCodeInvalidMatrix, "matrix must contain at least one unit")
	}

	seen := make(map[string]bool, len(m.Units))
	for _, u := range m.Units {
		if err := ValidateUnitID(u.ID); err != nil {
			return err
		}
		if seen[u.ID] {
			return New(ErrCodeInvalidMatrix, "duplicate unit id %q", u.ID)
		}
		seen[u.ID] = true
		if u.Type != "" && !validUnitTypes[u.Type] {
			return New(ErrCodeInvalidMatrix, "unit %q has unknown type %q", u.ID, u.Type)
		}
	}

	for _, r := range m.Relations {
		if r.SourceID == "" || r.TargetID == "" {
			return New(ErrCodeInvalidMatrix, "relation %q is missing an endpoint", r.ID)
		}
		if r.Type != "" && !validRelationTypes[r.Type] {
			return New(ErrCodeInvalidMatrix, "relation %q has unknown type %q", r.ID, r.Type)
		}
	}
	return nil
}

// ValidateName validates a stored matrix name for persistence and lookup.
// Names become document keys, so path separators and traversal sequences
// are rejected.
func ValidateName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "name cannot be empty")
	}
	if len(name) > 256 {
		return New(ErrCodeInvalidInput, "name too long (max 256 characters)")
	}
	if strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		return New(ErrCodeInvalidInput, "name contains invalid path characters")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "name contains control characters")
		}
	}
	return nil
}
