package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultsApplied(t *testing.T) {
	p := Default()
	if p.S != 23 || p.D != 7 {
		t.Errorf("default s/d = %f/%f", p.S, p.D)
	}
	if p.CourtyardModule != CourtyardNone {
		t.Errorf("default courtyard module = %q", p.CourtyardModule)
	}
	if !p.Labels || !p.FeetToMeters {
		t.Error("labels and feet_to_meters should default on")
	}
}

func TestMasterTriangleElevFallback(t *testing.T) {
	p := Default()
	if got := p.MasterTriangleElev(); got != p.UpperGround+p.CeilingHeight {
		t.Errorf("fallback elevation = %f, want %f", got, p.UpperGround+p.CeilingHeight)
	}
	elev := 14.5
	p.MasterTriangleElevation = &elev
	if got := p.MasterTriangleElev(); got != 14.5 {
		t.Errorf("explicit elevation = %f, want 14.5", got)
	}
}

func TestLoadProject(t *testing.T) {
	dir := t.TempDir()
	content := []byte("s: 30\nd: 9\ncourtyard_module: exterior_hex\nmaster_triangle_elevation: 12\n")
	if err := os.WriteFile(filepath.Join(dir, ProjectFile), content, 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadProject(dir)
	if err != nil {
		t.Fatalf("LoadProject: %v", err)
	}
	if p.S != 30 || p.D != 9 {
		t.Errorf("loaded s/d = %f/%f, want 30/9", p.S, p.D)
	}
	if p.CourtyardModule != CourtyardExteriorHex {
		t.Errorf("courtyard module = %q", p.CourtyardModule)
	}
	if p.MasterTriangleElevation == nil || *p.MasterTriangleElevation != 12 {
		t.Error("explicit master_triangle_elevation not read")
	}
	// Omitted keys keep defaults.
	if p.SlabThickness != 1 {
		t.Errorf("slab thickness = %f, want default 1", p.SlabThickness)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
