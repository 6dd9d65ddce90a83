package textutil

import "testing"

func TestNormalizeName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"User Name", "user_name"},
		{"Café--Price!", "cafe_price"},
		{"  __x__  ", "x"},
		{"AlreadyFine", "alreadyfine"},
		{"2024 Revenue (USD)", "2024_revenue_usd"},
		{"Ünïcode Héader", "unicode_header"},
		{"", ""},
		{"!!!", ""},
	}
	for _, c := range cases {
		if got := NormalizeName(c.in); got != c.want {
			t.Fatalf("NormalizeName(%q) got=%q want=%q", c.in, got, c.want)
		}
	}
}
