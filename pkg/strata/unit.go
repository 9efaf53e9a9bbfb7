package strata

import (
	"strconv"
	"strings"
)

// UnitType classifies an excavation unit.
type UnitType string

// Unit types recognized by the layout engine. Layers form the vertical
// backbone of the matrix; every other type is a feature dug into (or built
// on top of) a layer.
const (
	TypeLayer  UnitType = "LAYER"
	TypeAshPit UnitType = "ASH_PIT"
	TypeTomb   UnitType = "TOMB"
	TypeHouse  UnitType = "HOUSE"
	TypeKiln   UnitType = "KILN"
	TypeWell   UnitType = "WELL"
	TypeWall   UnitType = "WALL"
	TypeOther  UnitType = "OTHER"
)

// IsLayer reports whether t is the stratigraphic layer type.
func (t UnitType) IsLayer() bool { return t == TypeLayer }

// RelationType classifies a directed temporal assertion between two units.
type RelationType string

// Relation types. The source of a relation is always the chronologically
// younger unit, the target the older one.
const (
	RelCuts     RelationType = "CUTS"
	RelOverlays RelationType = "OVERLAYS"
	RelSameAs   RelationType = "SAME_AS"
	RelPartOf   RelationType = "PART_OF"
)

// Unit is a discrete excavation find: a layer, pit, tomb, house foundation,
// kiln, well, or wall. Units are immutable inputs to a layout computation;
// IDs must be unique across the working set.
type Unit struct {
	ID          string   `json:"id" bson:"id"`
	Type        UnitType `json:"type" bson:"type"`
	Description string   `json:"description,omitempty" bson:"description,omitempty"`

	// OpeningLayerID names the layer this unit was dug into. It is a lookup
	// key into the unit set, not an ownership reference: an empty value or a
	// value naming a unit that does not exist is simply ignored.
	OpeningLayerID string `json:"opening_layer_id,omitempty" bson:"opening_layer_id,omitempty"`
}

// Relation is a directed temporal assertion between two units.
// SourceID is the younger (upper) unit, TargetID the older (lower) one.
// Relations referencing unknown unit IDs are dropped during graph building.
type Relation struct {
	ID       string       `json:"id" bson:"id"`
	SourceID string       `json:"source_id" bson:"source_id"`
	TargetID string       `json:"target_id" bson:"target_id"`
	Type     RelationType `json:"type" bson:"type"`
}

// LayerKey is the ordering key for layer IDs of the form "<number><suffix>",
// e.g. "2" or "2a". Layers sort ascending by numeric part, then by suffix,
// which yields the excavation convention 1 < 2 < 2a < 3.
type LayerKey struct {
	Number int
	Suffix string
}

// ParseLayerKey splits a layer ID into its numeric part and letter suffix.
// IDs without a leading number get Number 0 and the whole ID as suffix, so
// they still order deterministically among themselves.
func ParseLayerKey(id string) LayerKey {
	i := 0
	for i < len(id) && id[i] >= '0' && id[i] <= '9' {
		i++
	}
	n, _ := strconv.Atoi(id[:i])
	return LayerKey{Number: n, Suffix: id[i:]}
}

// CompareLayerIDs orders two layer IDs by (numeric part, suffix). Distinct
// IDs with equal keys, such as "02" and "2", fall back to a lexical compare
// of the full ID so the ordering is total and never depends on map order.
// It returns a negative value when a sorts before b, zero only when the IDs
// are equal, and a positive value otherwise.
func CompareLayerIDs(a, b string) int {
	ka, kb := ParseLayerKey(a), ParseLayerKey(b)
	if ka.Number != kb.Number {
		return ka.Number - kb.Number
	}
	if c := strings.Compare(ka.Suffix, kb.Suffix); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}
