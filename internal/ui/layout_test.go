package ui

import "testing"

func TestCalculate(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		details       bool
		check         func(t *testing.T, l Layout)
	}{
		{
			name: "too small", width: 30, height: 20,
			check: func(t *testing.T, l Layout) {
				if !l.TooSmall {
					t.Error("expected TooSmall")
				}
			},
		},
		{
			name: "table only", width: 80, height: 24,
			check: func(t *testing.T, l Layout) {
				if l.TooSmall {
					t.Fatal("unexpected TooSmall")
				}
				if l.Table.Height != 21 || l.Table.Width != 80 {
					t.Errorf("table = %+v", l.Table)
				}
				if l.Details != (Rect{}) {
					t.Errorf("details must be empty, got %+v", l.Details)
				}
				if l.Footer.Y != 22 || l.Shortcuts.Y != 23 {
					t.Errorf("footer/shortcuts rows = %d/%d", l.Footer.Y, l.Shortcuts.Y)
				}
			},
		},
		{
			name: "details side by side", width: 120, height: 30, details: true,
			check: func(t *testing.T, l Layout) {
				if l.Table.Width != 72 || l.Details.X != 72 || l.Details.Width != 48 {
					t.Errorf("table %+v details %+v", l.Table, l.Details)
				}
				if l.Details.Height != l.Table.Height {
					t.Errorf("heights differ: %d vs %d", l.Details.Height, l.Table.Height)
				}
			},
		},
		{
			name: "details stacked", width: 80, height: 23, details: true,
			check: func(t *testing.T, l Layout) {
				if l.Table.Height != 12 || l.Details.Y != 13 || l.Details.Height != 8 {
					t.Errorf("table %+v details %+v", l.Table, l.Details)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, Calculate(tt.width, tt.height, tt.details))
		})
	}
}

func TestRectInner(t *testing.T) {
	w, h := Rect{Width: 10, Height: 5}.Inner()
	if w != 8 || h != 3 {
		t.Errorf("Inner() = %d,%d", w, h)
	}
	w, h = Rect{Width: 1, Height: 1}.Inner()
	if w != 0 || h != 0 {
		t.Errorf("Inner() of tiny rect = %d,%d", w, h)
	}
}
