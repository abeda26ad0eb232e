package command

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"   ", nil},
		{"kick bob", []string{"kick", "bob"}},
		{`kick bob "being rude"`, []string{"kick", "bob", "being rude"}},
		{`say "he said \"hi\""`, []string{"say", `he said "hi"`}},
		{"  leading   spaces", []string{"leading", "spaces"}},
	}
	for _, c := range cases {
		got := Tokenize(c.in)
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("Tokenize(%q) = %#v, want %#v", c.in, got, c.want)
		}
	}
}
