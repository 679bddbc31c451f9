package catalog

import "testing"

func TestParseAmount(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want float64
	}{
		{"4500.00", 4500},
		{"4500,00", 4500},
		{" 120 ", 120},
		{"1,299.99", 1299.99},
		{"1 234,50", 1234.5},
		{"0", 0},
		{"", 0},
		{"abc", 0},
		{"12,34,56", 0},
		{"-5", 0},
		{"NaN", 0},
	}
	for _, tc := range cases {
		if got := ParseAmount(tc.in); got != tc.want {
			t.Fatalf("ParseAmount(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestSlugify(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"Bosch GSR 12", "bosch-gsr-12"},
		{"  Makita   DF333 ", "makita-df333"},
		{"Bosch Ø10", "bosch-10"},
		{"bosch  ø10", "bosch-10"},
		{"--a--b--", "a-b"},
		{"Дрель", "product"},
		{"", "product"},
		{"UPPER", "upper"},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Fatalf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{"Bosch GSR 12", "bosch  ø10", "a--b c", "", "Дрель ударная"}
	for _, in := range inputs {
		once := Slugify(in)
		if twice := Slugify(once); twice != once {
			t.Fatalf("Slugify not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}
