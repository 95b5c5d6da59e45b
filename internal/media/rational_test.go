package media

import "testing"

func TestRationalReduce(t *testing.T) {
	tests := []struct {
		in, want Rational
	}{
		{Rational{16, 9}, Rational{16, 9}},
		{Rational{1920, 1080}, Rational{16, 9}},
		{Rational{-4, -8}, Rational{1, 2}},
		{Rational{4, -8}, Rational{-1, 2}},
		{Rational{0, 7}, Rational{0, 1}},
		{Rational{5, 0}, Rational{5, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.in.String(), func(t *testing.T) {
			if got := tt.in.Reduce(); got != tt.want {
				t.Errorf("Reduce() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRationalMul(t *testing.T) {
	tests := []struct {
		name string
		a, b Rational
		want Rational
	}{
		{"square pixels", Rational{1, 1}, Rational{1920, 1080}, Rational{16, 9}},
		{"anamorphic dvd", Rational{32, 27}, Rational{720, 480}, Rational{16, 9}},
		{"pal 4:3", Rational{16, 15}, Rational{720, 576}, Rational{4, 3}},
		{"invalid left", Rational{1, 0}, Rational{1, 1}, Rational{}},
		{"invalid right", Rational{1, 1}, Rational{1, 0}, Rational{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Mul(tt.b); got != tt.want {
				t.Errorf("Mul() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseRational(t *testing.T) {
	tests := []struct {
		in      string
		want    Rational
		wantErr bool
	}{
		{"24000/1001", Rational{24000, 1001}, false},
		{"16:9", Rational{16, 9}, false},
		{"0/0", Rational{0, 0}, false},
		{"25", Rational{}, true},
		{"a/b", Rational{}, true},
		{"1/x", Rational{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRational(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRational(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseRational(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRationalPredicates(t *testing.T) {
	if (Rational{1, 0}).Valid() {
		t.Error("zero denominator should be invalid")
	}
	if !(Rational{50, 2}).IsInteger() {
		t.Error("50/2 should be an integer")
	}
	if (Rational{24000, 1001}).IsInteger() {
		t.Error("24000/1001 should not be an integer")
	}
	if !(Rational{2, 4}).Equal(Rational{1, 2}) {
		t.Error("2/4 should equal 1/2")
	}
	if (Rational{1, 0}).Equal(Rational{2, 0}) {
		t.Error("distinct invalid rationals should not be equal")
	}
}

func TestParseFieldOrder(t *testing.T) {
	tests := []struct {
		in         string
		want       FieldOrder
		interlaced bool
	}{
		{"progressive", FieldProgressive, false},
		{"tt", FieldTT, true},
		{"bb", FieldBB, true},
		{"tb", FieldTB, true},
		{"bt", FieldBT, true},
		{"", FieldUnknown, false},
		{"unknown", FieldUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseFieldOrder(tt.in)
			if got != tt.want {
				t.Errorf("ParseFieldOrder(%q) = %v, want %v", tt.in, got, tt.want)
			}
			if got.Interlaced() != tt.interlaced {
				t.Errorf("Interlaced() = %v, want %v", got.Interlaced(), tt.interlaced)
			}
		})
	}
}

func TestTagsLookup(t *testing.T) {
	tags := Tags{{"LANGUAGE", "ger"}, {"title", "Main"}, {"language", "eng"}}

	if v, ok := tags.Lookup("language", "LANGUAGE"); !ok || v != "eng" {
		t.Errorf("Lookup() = %q, %v, want eng, true", v, ok)
	}
	if v, ok := tags.Lookup("TITLE", "title"); !ok || v != "Main" {
		t.Errorf("Lookup() = %q, %v, want Main, true", v, ok)
	}
	if _, ok := tags.Lookup("artist"); ok {
		t.Error("Lookup() found a missing key")
	}
}
