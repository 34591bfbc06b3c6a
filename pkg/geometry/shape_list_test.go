package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// MockShape implements Shape for testing
type MockShape struct {
	t     float64
	calls int
	tMax  []float64
}

func (m *MockShape) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	m.calls++
	m.tMax = append(m.tMax, tMax)
	if m.t <= tMin || m.t >= tMax {
		return nil, false
	}
	return &material.HitRecord{T: m.t, Point: ray.At(m.t)}, true
}

func TestShapeList_Empty(t *testing.T) {
	list := NewShapeList()
	if _, isHit := list.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), 0.001, math.Inf(1)); isHit {
		t.Error("Empty list should never report a hit")
	}
}

func TestShapeList_ReturnsNearestRegardlessOfOrder(t *testing.T) {
	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1))

	orders := [][]float64{
		{5, 2, 8},
		{2, 8, 5},
		{8, 5, 2},
	}
	for _, order := range orders {
		list := NewShapeList()
		for _, tv := range order {
			list.Add(&MockShape{t: tv})
		}

		hit, isHit := list.Hit(ray, 0.001, math.Inf(1))
		if !isHit {
			t.Fatalf("order %v: expected hit", order)
		}
		if hit.T != 2 {
			t.Errorf("order %v: expected nearest t=2, got %f", order, hit.T)
		}
	}
}

func TestShapeList_NarrowsTMax(t *testing.T) {
	first := &MockShape{t: 4}
	second := &MockShape{t: 6}
	list := NewShapeList(first, second)

	list.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), 0.001, 100)

	if second.tMax[0] != 4 {
		t.Errorf("Second shape should be tested against tMax=4, got %f", second.tMax[0])
	}
	if first.calls != 1 || second.calls != 1 {
		t.Errorf("Every shape must be tested once, got %d and %d", first.calls, second.calls)
	}
}

func TestShapeList_Spheres(t *testing.T) {
	near := NewSphere(core.NewVec3(0, 0, -2), 0.5, material.NewMetal(core.NewVec3(1, 1, 1), 0))
	far := NewSphere(core.NewVec3(0, 0, -5), 0.5, material.NewLambertian(core.NewVec3(1, 0, 0)))
	list := NewShapeList(far, near)

	hit, isHit := list.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), 0.001, math.Inf(1))
	if !isHit {
		t.Fatal("Expected hit")
	}
	if math.Abs(hit.T-1.5) > 1e-9 {
		t.Errorf("Expected t=1.5, got %f", hit.T)
	}
	if hit.Material.Kind != material.KindMetal {
		t.Errorf("Expected the near metal sphere, got %v", hit.Material)
	}

	if list.Len() != 2 {
		t.Errorf("Expected 2 shapes, got %d", list.Len())
	}
	list.Clear()
	if list.Len() != 0 {
		t.Errorf("Expected empty list after Clear, got %d", list.Len())
	}
}
