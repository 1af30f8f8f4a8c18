package toolpath

import (
	"errors"
	"math"
	"testing"
)

func TestResolveCircle(t *testing.T) {
	geo, err := ResolveCircle(0.5, 3.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if geo.ToolRadius != 0.25 {
		t.Errorf("expected tool radius 0.25, got %f", geo.ToolRadius)
	}
	if geo.FeatureRadius != 1.5 {
		t.Errorf("expected feature radius 1.5, got %f", geo.FeatureRadius)
	}
	if math.Abs(geo.PathRadius-1.25) > 1e-12 {
		t.Errorf("expected path radius 1.25, got %f", geo.PathRadius)
	}
}

func TestResolveCircle_ToolTooLarge(t *testing.T) {
	_, err := ResolveCircle(0.6, 0.5)
	if err == nil {
		t.Fatal("expected geometry error for oversized tool")
	}
	var geoErr *GeometryError
	if !errors.As(err, &geoErr) {
		t.Fatalf("expected *GeometryError, got %T", err)
	}
}

func TestResolveCircle_ToolEqualsFeature(t *testing.T) {
	// A pocket cannot be cut by a tool exactly its own size: the guard is
	// strict for circular pockets.
	_, err := ResolveCircle(0.5, 0.5)
	if err == nil {
		t.Fatal("expected geometry error for tool equal to pocket diameter")
	}
}

func TestResolveThread_ToolEqualsMajor(t *testing.T) {
	// Thread milling tolerates an exactly tool-sized feature; the sequencer
	// substitutes a plunge for the helical entry when the path radius is zero.
	geo, err := ResolveThread(0.25, 0.25)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if geo.PathRadius != 0 {
		t.Errorf("expected zero path radius, got %f", geo.PathRadius)
	}
}

func TestResolveThread_ToolTooLarge(t *testing.T) {
	_, err := ResolveThread(0.3, 0.25)
	if err == nil {
		t.Fatal("expected geometry error when tool exceeds major diameter")
	}
}
