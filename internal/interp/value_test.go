package interp

import "testing"

func TestIsTruthy(t *testing.T) {
	cases := []struct {
		name string
		v    Value
		want bool
	}{
		{"nil", Nil, false},
		{"false", BoolValue{Value: false}, false},
		{"true", BoolValue{Value: true}, true},
		{"zero", NumberValue{Value: 0}, true},
		{"empty string", StringValue{Value: ""}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := IsTruthy(c.v); got != c.want {
				t.Errorf("IsTruthy(%v) = %v, want %v", c.v, got, c.want)
			}
		})
	}
}

func TestValuesEqual(t *testing.T) {
	if !ValuesEqual(Nil, Nil) {
		t.Error("nil should equal nil")
	}
	if ValuesEqual(Nil, BoolValue{Value: false}) {
		t.Error("nil should not equal false")
	}
	if !ValuesEqual(NumberValue{Value: 1}, NumberValue{Value: 1}) {
		t.Error("equal numbers should compare equal")
	}
	if ValuesEqual(NumberValue{Value: 1}, StringValue{Value: "1"}) {
		t.Error("a number should never equal a string")
	}
	if !ValuesEqual(StringValue{Value: "a"}, StringValue{Value: "a"}) {
		t.Error("equal strings should compare equal")
	}
}
