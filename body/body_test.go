package body

import (
	"math"
	"testing"

	"github.com/akmonengine/rigid2d/geom"
)

func TestRecomputeMass(t *testing.T) {
	tests := []struct {
		name       string
		isStatic   bool
		mass       float64
		wantInv    float64
	}{
		{"dynamic positive mass", false, 2.0, 0.5},
		{"static body", true, 2.0, 0},
		{"zero mass", false, 0, 0},
		{"negative mass", false, -5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBody()
			b.IsStatic = tt.isStatic
			b.Mass = tt.mass
			b.RecomputeMass()
			if b.InvMass != tt.wantInv {
				t.Errorf("InvMass = %v, want %v", b.InvMass, tt.wantInv)
			}
		})
	}
}

func TestSetStaticZeroesVelocity(t *testing.T) {
	b := NewBody()
	b.Mass = 1
	b.RecomputeMass()
	b.LinearVelocity = geom.Vec2{3, 4}
	b.AngularVelocity = 2

	b.SetStatic(true)

	if b.LinearVelocity != (geom.Vec2{}) {
		t.Errorf("LinearVelocity = %v, want zero", b.LinearVelocity)
	}
	if b.AngularVelocity != 0 {
		t.Errorf("AngularVelocity = %v, want 0", b.AngularVelocity)
	}
	if b.InvMass != 0 || b.InvInertia != 0 {
		t.Errorf("static body must have zero inverse mass/inertia, got %v / %v", b.InvMass, b.InvInertia)
	}
}

func TestAddForceIgnoredOnStatic(t *testing.T) {
	b := NewBody()
	b.SetStatic(true)
	b.AddForce(geom.Vec2{1, 1})
	b.AddTorque(5)
	if b.Force != (geom.Vec2{}) || b.Torque != 0 {
		t.Errorf("static body should not accumulate force/torque, got %v / %v", b.Force, b.Torque)
	}
}

func TestClearForces(t *testing.T) {
	b := NewBody()
	b.Mass = 1
	b.RecomputeMass()
	b.AddForce(geom.Vec2{1, 2})
	b.AddTorque(3)
	b.ClearForces()
	if b.Force != (geom.Vec2{}) || b.Torque != 0 {
		t.Error("ClearForces should zero accumulated force and torque")
	}
}

func TestNewBodyDefaults(t *testing.T) {
	b := NewBody()
	if b.Scale != (geom.Vec2{1, 1}) {
		t.Errorf("default Scale = %v, want (1,1)", b.Scale)
	}
	if !math.IsInf(b.MaxLinearSpeed, 1) {
		t.Errorf("default MaxLinearSpeed = %v, want +Inf", b.MaxLinearSpeed)
	}
	if b.DebugTag.String() == "00000000-0000-0000-0000-000000000000" {
		t.Error("expected a non-nil uuid debug tag")
	}
}
