package imgedit

import (
	"errors"
	"testing"
)

func TestComposeTable(t *testing.T) {
	// Rows are the first orientation, columns the second, both in tag order.
	want := [8][8]Orientation{
		{Normal, FlipX, Rotate180, FlipY, Transpose, Rotate90, Transverse, Rotate270},
		{FlipX, Normal, FlipY, Rotate180, Rotate270, Transverse, Rotate90, Transpose},
		{Rotate180, FlipY, Normal, FlipX, Transverse, Rotate270, Transpose, Rotate90},
		{FlipY, Rotate180, FlipX, Normal, Rotate90, Transpose, Rotate270, Transverse},
		{Transpose, Rotate90, Transverse, Rotate270, Normal, FlipX, Rotate180, FlipY},
		{Rotate90, Transpose, Rotate270, Transverse, FlipY, Rotate180, FlipX, Normal},
		{Transverse, Rotate270, Transpose, Rotate90, Rotate180, FlipY, Normal, FlipX},
		{Rotate270, Transverse, Rotate90, Transpose, FlipX, Normal, FlipY, Rotate180},
	}
	for i, first := range Orientations {
		for j, second := range Orientations {
			if got := Compose(first, second); got != want[i][j] {
				t.Errorf("Compose(%v, %v) = %v, want %v", first, second, got, want[i][j])
			}
		}
	}
}

func TestComposeClosedAndAssociative(t *testing.T) {
	for _, a := range Orientations {
		for _, b := range Orientations {
			ab := Compose(a, b)
			if !ab.IsValid() {
				t.Fatalf("Compose(%v, %v) = %v, not a valid orientation", a, b, ab)
			}
			for _, c := range Orientations {
				if l, r := Compose(ab, c), Compose(a, Compose(b, c)); l != r {
					t.Errorf("(%v∘%v)∘%v = %v but %v∘(%v∘%v) = %v", a, b, c, l, a, b, c, r)
				}
			}
		}
	}
}

func TestComposeIdentity(t *testing.T) {
	for _, o := range Orientations {
		if got := Compose(Normal, o); got != o {
			t.Errorf("Compose(Normal, %v) = %v", o, got)
		}
		if got := Compose(o, Normal); got != o {
			t.Errorf("Compose(%v, Normal) = %v", o, got)
		}
	}
}

func TestInverse(t *testing.T) {
	tests := []struct {
		o, want Orientation
	}{
		{Normal, Normal},
		{FlipX, FlipX},
		{Rotate180, Rotate180},
		{FlipY, FlipY},
		{Transpose, Transverse},
		{Transverse, Transpose},
		{Rotate90, Rotate270},
		{Rotate270, Rotate90},
	}
	for _, tt := range tests {
		t.Run(tt.o.String(), func(t *testing.T) {
			inv := tt.o.Inverse()
			if inv != tt.want {
				t.Errorf("%v.Inverse() = %v, want %v", tt.o, inv, tt.want)
			}
			if got := Compose(tt.o, inv); got != Normal {
				t.Errorf("Compose(%v, inverse) = %v, want Normal", tt.o, got)
			}
			if got := Compose(inv, tt.o); got != Normal {
				t.Errorf("Compose(inverse, %v) = %v, want Normal", tt.o, got)
			}
			if got := inv.Inverse(); got != tt.o {
				t.Errorf("double inverse of %v = %v", tt.o, got)
			}
		})
	}
}

func TestComposePanicsOnInvalid(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Compose with an invalid orientation should panic")
		}
	}()
	Compose(Orientation(0), Normal)
}

func TestOrientationTransformTable(t *testing.T) {
	const w, h = 40, 30
	tests := []struct {
		o    Orientation
		want Affine
	}{
		{Normal, Affine{1, 0, 0, 1, 0, 0}},
		{FlipX, Affine{-1, 0, 0, 1, w, 0}},
		{Rotate180, Affine{-1, 0, 0, -1, w, h}},
		{FlipY, Affine{1, 0, 0, -1, 0, h}},
		{Transpose, Affine{0, 1, 1, 0, 0, 0}},
		{Rotate90, Affine{0, -1, 1, 0, 0, w}},
		{Transverse, Affine{0, -1, -1, 0, h, w}},
		{Rotate270, Affine{0, 1, -1, 0, h, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.o.String(), func(t *testing.T) {
			if got := tt.o.Transform(Sz(w, h)); got != tt.want {
				t.Errorf("%v.Transform = %+v, want %+v", tt.o, got, tt.want)
			}
		})
	}
}

func TestOrientationTransformProperties(t *testing.T) {
	if m := Normal.Transform(Sz(123, 456)); !m.IsIdentity() {
		t.Errorf("Normal.Transform = %+v, want identity", m)
	}
	if got := Rotate90.Transform(Sz(640, 480)).TransformPoint(Pt(0, 0)); got != Pt(0, 640) {
		t.Errorf("Rotate90 maps origin to %v, want (0,640)", got)
	}
	for _, o := range Orientations {
		out := o.Transform(Sz(640, 480)).TransformRect(R(0, 0, 640, 480))
		wantW, wantH := 640.0, 480.0
		if o.SwapsAxes() {
			wantW, wantH = 480, 640
		}
		if out.Width != wantW || out.Height != wantH {
			t.Errorf("%v output size = %vx%v, want %vx%v", o, out.Width, out.Height, wantW, wantH)
		}
	}
}

func TestOrientationPredicates(t *testing.T) {
	mirrored := map[Orientation]bool{FlipX: true, FlipY: true, Transpose: true, Transverse: true}
	for _, o := range Orientations {
		if got := o.IsMirrored(); got != mirrored[o] {
			t.Errorf("%v.IsMirrored() = %v", o, got)
		}
	}
	if Orientation(0).IsValid() || Orientation(9).IsValid() {
		t.Error("out of range values must be invalid")
	}
}

func TestParseOrientation(t *testing.T) {
	tests := []struct {
		in      string
		want    Orientation
		wantErr bool
	}{
		{"Normal", Normal, false},
		{"rotate90", Rotate90, false},
		{" TRANSVERSE ", Transverse, false},
		{"6", Rotate90, false},
		{"8", Rotate270, false},
		{"0", 0, true},
		{"upside-down", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOrientation(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidOrientation) {
					t.Errorf("ParseOrientation(%q) error = %v, want ErrInvalidOrientation", tt.in, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseOrientation(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
			}
		})
	}
}

func TestOrientationText(t *testing.T) {
	for _, o := range Orientations {
		text, err := o.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v): %v", o, err)
		}
		var back Orientation
		if err := back.UnmarshalText(text); err != nil || back != o {
			t.Errorf("UnmarshalText(%q) = %v, %v", text, back, err)
		}
	}
	if _, err := Orientation(42).MarshalText(); err == nil {
		t.Error("MarshalText of invalid orientation should fail")
	}
}
