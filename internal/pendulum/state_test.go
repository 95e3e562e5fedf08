package pendulum

import (
	"errors"
	"math"
	"testing"
)

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name    string
		arm1    Arm
		arm2    Arm
		wantErr error
	}{
		{"valid", NewArm(5, 2, 0), NewArm(7, 1.5, 0), nil},
		{"tiny mass", NewArm(1e-6, 1, 0), NewArm(1e-6, 1, 0), nil},
		{"tiny length", NewArm(1, 1e-6, 0), NewArm(1, 1e-6, 0), nil},
		{"zero mass1", NewArm(0, 1, 0), NewArm(1, 1, 0), ErrInvalidMass},
		{"negative mass2", NewArm(1, 1, 0), NewArm(-1, 1, 0), ErrInvalidMass},
		{"NaN mass", NewArm(math.NaN(), 1, 0), NewArm(1, 1, 0), ErrInvalidMass},
		{"zero length1", NewArm(1, 0, 0), NewArm(1, 1, 0), ErrInvalidLength},
		{"negative length2", NewArm(1, 1, 0), NewArm(1, -2, 0), ErrInvalidLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.arm1, tt.arm2)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestArmErrorContext(t *testing.T) {
	_, err := New(NewArm(1, 1, 0), NewArm(1, -3, 0))

	var armErr *ArmError
	if !errors.As(err, &armErr) {
		t.Fatalf("expected *ArmError, got %T", err)
	}
	if armErr.Arm != 2 || armErr.Field != "length" || armErr.Value != -3 {
		t.Errorf("unexpected context: %+v", armErr)
	}
}

func TestNewWithGravity(t *testing.T) {
	s, err := NewWithGravity(NewArm(1, 1, 0), NewArm(1, 1, 0), 1.62)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Gravity != 1.62 {
		t.Errorf("expected gravity 1.62, got %f", s.Gravity)
	}

	if _, err := NewWithGravity(NewArm(1, 1, 0), NewArm(1, 1, 0), math.Inf(1)); !errors.Is(err, ErrInvalidGravity) {
		t.Errorf("expected ErrInvalidGravity, got %v", err)
	}

	d, _ := New(NewArm(1, 1, 0), NewArm(1, 1, 0))
	if d.Gravity != DefaultGravity {
		t.Errorf("expected default gravity %f, got %f", DefaultGravity, d.Gravity)
	}
}

func TestNewArmAtRest(t *testing.T) {
	a := NewArm(2, 3, 0.4)
	if a.AngularVelocity != 0 || a.AngularAcceleration != 0 {
		t.Errorf("expected arm at rest, got %+v", a)
	}
}

func TestArmPosition(t *testing.T) {
	tests := []struct {
		angle float64
		x, y  float64
	}{
		{0, 0, 2},
		{math.Pi / 2, 2, 0},
		{-math.Pi / 2, -2, 0},
		{math.Pi, 0, -2},
	}

	for _, tt := range tests {
		p := NewArm(1, 2, tt.angle).Position()
		if math.Abs(p.X-tt.x) > 1e-12 || math.Abs(p.Y-tt.y) > 1e-12 {
			t.Errorf("angle %f: got (%f, %f), want (%f, %f)", tt.angle, p.X, p.Y, tt.x, tt.y)
		}
	}
}

func TestJointPositions(t *testing.T) {
	s, err := New(NewArm(5, 2, -math.Pi/2), NewArm(7, 1.5, -math.Pi/4))
	if err != nil {
		t.Fatal(err)
	}

	j1, j2 := s.Joints()

	if j1 != (Position{X: 2 * math.Sin(-math.Pi/2), Y: 2 * math.Cos(-math.Pi/2)}) {
		t.Errorf("joint1 = %+v", j1)
	}

	want := s.Arm1.Position().Add(s.Arm2.Position())
	if j2 != want {
		t.Errorf("joint2 = %+v, want %+v", j2, want)
	}
	if s.TotalLength() != 3.5 {
		t.Errorf("expected total length 3.5, got %f", s.TotalLength())
	}
}

func TestPositionAdd(t *testing.T) {
	p := Position{X: 1, Y: -2}.Add(Position{X: 0.5, Y: 4})
	if p.X != 1.5 || p.Y != 2 {
		t.Errorf("Add failed: got %+v", p)
	}
}

func TestEnergyAtRest(t *testing.T) {
	s, _ := New(NewArm(1, 1, 0), NewArm(1, 1, 0))

	if s.Kinetic() != 0 {
		t.Errorf("expected zero kinetic energy, got %f", s.Kinetic())
	}

	// both masses below the pivot: y1 = 1, y2 = 2
	expected := -DefaultGravity * (1 + 2)
	if math.Abs(s.Energy()-expected) > 1e-10 {
		t.Errorf("expected energy %f, got %f", expected, s.Energy())
	}
}

func TestEnergyKinetic(t *testing.T) {
	s, _ := New(NewArm(2, 1, 0), NewArm(1, 1, 0))
	s.Arm1.AngularVelocity = 1
	s.Arm2.AngularVelocity = 1

	// rigid rotation: v1 = 1, v2 = 2
	expected := 0.5*2*1 + 0.5*1*4
	if math.Abs(s.Kinetic()-expected) > 1e-10 {
		t.Errorf("expected kinetic %f, got %f", expected, s.Kinetic())
	}
}
