package layout

import "github.com/strataviz/harris/pkg/layout/route"

// Default geometry. These are the single source of truth for the CLI, the
// HTTP API, and direct library callers; a TOML config file or flags may
// override any of them.
const (
	DefaultWidth  = 1200.0
	DefaultHeight = 900.0

	DefaultRankSpacing   = 140.0 // vertical distance between depth tiers
	DefaultBaseOffset    = 80.0  // y of the shallowest tier
	DefaultColumnSpacing = 170.0 // fixed column width for side placement
	DefaultLayerSpacing  = 0.4   // layer fan-out, as a fraction of ColumnSpacing
	DefaultMidlineGap    = 170.0 // distance from midline to the first side column

	DefaultNodeWidth  = 110.0
	DefaultNodeHeight = 46.0

	DefaultStubLength     = 18.0
	DefaultBridgeRadius   = 6.0
	DefaultCrossMargin    = 2.0
	DefaultAlignTolerance = 1.0
)

// Config holds all layout and routing geometry. The zero value of any field
// is replaced by its default, so callers only set what they want to change.
type Config struct {
	Width  float64 `json:"width" bson:"width" toml:"width"`
	Height float64 `json:"height" bson:"height" toml:"height"`

	RankSpacing   float64 `json:"rank_spacing,omitempty" bson:"rank_spacing,omitempty" toml:"rank_spacing"`
	BaseOffset    float64 `json:"base_offset,omitempty" bson:"base_offset,omitempty" toml:"base_offset"`
	ColumnSpacing float64 `json:"column_spacing,omitempty" bson:"column_spacing,omitempty" toml:"column_spacing"`
	LayerSpacing  float64 `json:"layer_spacing,omitempty" bson:"layer_spacing,omitempty" toml:"layer_spacing"`
	MidlineGap    float64 `json:"midline_gap,omitempty" bson:"midline_gap,omitempty" toml:"midline_gap"`

	NodeWidth  float64 `json:"node_width,omitempty" bson:"node_width,omitempty" toml:"node_width"`
	NodeHeight float64 `json:"node_height,omitempty" bson:"node_height,omitempty" toml:"node_height"`

	StubLength     float64 `json:"stub_length,omitempty" bson:"stub_length,omitempty" toml:"stub_length"`
	BridgeRadius   float64 `json:"bridge_radius,omitempty" bson:"bridge_radius,omitempty" toml:"bridge_radius"`
	CrossMargin    float64 `json:"cross_margin,omitempty" bson:"cross_margin,omitempty" toml:"cross_margin"`
	AlignTolerance float64 `json:"align_tolerance,omitempty" bson:"align_tolerance,omitempty" toml:"align_tolerance"`
}

// DefaultConfig returns a Config with every field set to its default.
func DefaultConfig() Config {
	return Config{}.WithDefaults()
}

// WithDefaults returns a copy of the config with zero fields filled in.
func (c Config) WithDefaults() Config {
	def := func(v *float64, d float64) {
		if *v == 0 {
			*v = d
		}
	}
	def(&c.Width, DefaultWidth)
	def(&c.Height, DefaultHeight)
	def(&c.RankSpacing, DefaultRankSpacing)
	def(&c.BaseOffset, DefaultBaseOffset)
	def(&c.ColumnSpacing, DefaultColumnSpacing)
	def(&c.LayerSpacing, DefaultLayerSpacing)
	def(&c.MidlineGap, DefaultMidlineGap)
	def(&c.NodeWidth, DefaultNodeWidth)
	def(&c.NodeHeight, DefaultNodeHeight)
	def(&c.StubLength, DefaultStubLength)
	def(&c.BridgeRadius, DefaultBridgeRadius)
	def(&c.CrossMargin, DefaultCrossMargin)
	def(&c.AlignTolerance, DefaultAlignTolerance)
	return c
}

// routeConfig projects the layout config onto the routing parameters.
func (c Config) routeConfig() route.Config {
	return route.Config{
		CanvasWidth:    c.Width,
		NodeWidth:      c.NodeWidth,
		NodeHeight:     c.NodeHeight,
		StubLength:     c.StubLength,
		BridgeRadius:   c.BridgeRadius,
		CrossMargin:    c.CrossMargin,
		AlignTolerance: c.AlignTolerance,
		FarApart:       c.ColumnSpacing,
	}
}
