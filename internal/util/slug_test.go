package util

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Café de la Playa!!", "cafe-de-la-playa"},
		{"  Número 42  ", "numero-42"},
		{"Cancún VIP", "cancun-vip"},
		{"Riviera   Maya -- Todo Incluido", "riviera-maya-todo-incluido"},
		{"ÁÉÍÓÚ äöü ñ", "aeiou-aou-n"},
		{"---", ""},
		{"", ""},
		{"2026!", "2026"},
	}

	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
