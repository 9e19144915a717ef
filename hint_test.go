package buddha

import "testing"

func TestInMainBody(t *testing.T) {
	tests := []struct {
		name string
		c    complex128
		want bool
	}{
		{"origin", 0, true},
		{"cardioid interior", complex(-0.5, 0), true},
		{"cardioid near cusp", complex(0.2, 0), true},
		{"cardioid upper", complex(-0.1, 0.5), true},
		{"bulb center", complex(-1, 0), true},
		{"bulb interior", complex(-1.1, 0.1), true},
		{"escaping real", complex(0.3, 0), false},
		{"escaping far", complex(1, 1), false},
		{"set tip", complex(-2, 0), false},
		{"misiurewicz i", complex(0, 1), false},
		{"neck", complex(-0.75, 0.1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InMainBody(tt.c); got != tt.want {
				t.Errorf("InMainBody(%v) = %v, want %v", tt.c, got, tt.want)
			}
		})
	}
}

// TestInMainBody_NoFalsePositives iterates every grid point the filter
// rejects and checks that none of them escapes.
func TestInMainBody_NoFalsePositives(t *testing.T) {
	const (
		n     = 256
		iters = 1000
	)
	m := NewMapper(n, n, 2)

	rejected := 0
	for i := range m.Size() {
		c := m.IndexToComplex(i)
		if !InMainBody(c) {
			continue
		}
		rejected++

		z := c
		for k := range iters {
			if real(z)*real(z)+imag(z)*imag(z) > 4 {
				t.Fatalf("InMainBody(%v) = true but orbit escaped after %d iterations", c, k)
			}
			z = z*z + c
		}
	}
	if rejected == 0 {
		t.Fatal("no grid point was rejected")
	}
}
