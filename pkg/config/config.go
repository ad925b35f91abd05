// Package config holds the flat parameter set that drives plan derivation,
// model assembly, and export. Parameters load from a YAML project file and
// may be overridden individually by CLI flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectFile is the expected parameter file name inside a project directory.
const ProjectFile = "home.yaml"

// Courtyard module names accepted by the plan builder.
const (
	CourtyardNone            = "none"
	CourtyardSharedFrontEdge = "shared_front_edge"
	CourtyardExteriorHex     = "exterior_hex"
)

// Params is the full parameter set. Lengths are in feet, angles in degrees,
// elevations in feet relative to the upper ground datum.
type Params struct {
	// Plan shape.
	S                           float64 `yaml:"s"`
	D                           float64 `yaml:"d"`
	TriangleClockwiseBackoffDeg float64 `yaml:"triangle_clockwise_backoff_deg"`
	TrianglePlanDownShiftFt     float64 `yaml:"triangle_plan_down_shift_ft"`

	// Vertical stack.
	CeilingHeight           float64  `yaml:"ceiling_height"`
	SlabThickness           float64  `yaml:"slab_thickness"`
	LowerGround             float64  `yaml:"lower_ground"`
	UpperGround             float64  `yaml:"upper_ground"`
	MasterTriangleElevation *float64 `yaml:"master_triangle_elevation"`
	AtriumFloor             float64  `yaml:"atrium_floor"`
	AtriumRoofBase          float64  `yaml:"atrium_roof_base"`
	AtriumRoofRise          float64  `yaml:"atrium_roof_rise"`
	CourtyardDrop           float64  `yaml:"courtyard_drop"`
	TerrainDrop             float64  `yaml:"terrain_drop"`

	// Driveway.
	DrivewayWidth         float64 `yaml:"driveway_width"`
	DrivewayLength        float64 `yaml:"driveway_length"`
	DrivewayFlatLength    float64 `yaml:"driveway_flat_length"`
	DrivewayCurveLength   float64 `yaml:"driveway_curve_length"`
	DrivewayApproachSlope float64 `yaml:"driveway_approach_slope"`

	// Walls.
	WallThicknessConcrete float64 `yaml:"wall_thickness_concrete"`
	WallThicknessGlass    float64 `yaml:"wall_thickness_glass"`

	// Options.
	CourtyardModule string  `yaml:"courtyard_module"`
	GLBRotateXDeg   float64 `yaml:"glb_rotate_x_deg"`
	Labels          bool    `yaml:"labels"`
	Epsilon         float64 `yaml:"epsilon"`
	FeetToMeters    bool    `yaml:"feet_to_meters"`
}

// Default returns the baseline parameter set.
func Default() *Params {
	return &Params{
		S:                           23,
		D:                           7,
		TriangleClockwiseBackoffDeg: 0,
		TrianglePlanDownShiftFt:     0,
		CeilingHeight:               10,
		SlabThickness:               1,
		LowerGround:                 -10,
		UpperGround:                 0,
		AtriumFloor:                 -12,
		AtriumRoofBase:              24,
		AtriumRoofRise:              8,
		CourtyardDrop:               -10,
		TerrainDrop:                 10,
		DrivewayWidth:               12,
		DrivewayLength:              67.5,
		DrivewayFlatLength:          50,
		DrivewayCurveLength:         50,
		DrivewayApproachSlope:       0.02,
		WallThicknessConcrete:       0.667,
		WallThicknessGlass:          0,
		CourtyardModule:             CourtyardNone,
		GLBRotateXDeg:               0,
		Labels:                      true,
		Epsilon:                     1e-6,
		FeetToMeters:                true,
	}
}

// Load reads a parameter file, applying defaults for any omitted keys.
func Load(path string) (*Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading parameters: %w", err)
	}
	p := Default()
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parsing parameters %s: %w", path, err)
	}
	return p, nil
}

// LoadProject loads home.yaml from a project directory.
func LoadProject(dir string) (*Params, error) {
	return Load(filepath.Join(dir, ProjectFile))
}

// MasterTriangleElev returns the master triangle floor elevation, defaulting
// to one ceiling height above the upper ground when unset.
func (p *Params) MasterTriangleElev() float64 {
	if p.MasterTriangleElevation != nil {
		return *p.MasterTriangleElevation
	}
	return p.UpperGround + p.CeilingHeight
}
