package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripTags(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain text", in: "Breng uw kerstboom weg.", want: "Breng uw kerstboom weg."},
		{name: "empty", in: "", want: ""},
		{name: "tags", in: "<p>In <b>Nieuw-West</b> apart aanmelden.</p>", want: "In Nieuw-West apart aanmelden."},
		{name: "link", in: `Zie <a href="https://www.amsterdam.nl">de website</a>`, want: "Zie de website"},
		{name: "entities", in: "Papier &amp; karton", want: "Papier & karton"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripTags(tt.in))
		})
	}
}

func TestKeep(t *testing.T) {
	assert.Equal(t, "<b>x</b>", Keep("<b>x</b>"))
}
