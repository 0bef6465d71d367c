package i18n

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLang(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Lang
		wantErr bool
	}{
		{name: "plain", in: "en", want: English},
		{name: "upper case", in: "DE", want: German},
		{name: "region dropped", in: "de-AT", want: German},
		{name: "underscore region", in: "en_US", want: English},
		{name: "surrounding space", in: " de ", want: German},
		{name: "empty", in: "", wantErr: true},
		{name: "garbage", in: "!!", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLang(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLangsDefaultsAndDedup(t *testing.T) {
	langs, err := ParseLangs(nil)
	require.NoError(t, err)
	assert.Equal(t, []Lang{English, German}, langs)

	langs, err = ParseLangs([]string{"de", "en", "de-CH"})
	require.NoError(t, err)
	assert.Equal(t, []Lang{German, English}, langs)
}

func TestSelect(t *testing.T) {
	text := Text{"en": "parameter", "de": "Parameter"}

	got, err := text.Select(German)
	require.NoError(t, err)
	assert.Equal(t, "Parameter", got)

	_, err = text.Select(Lang("fr"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingLanguage))
	assert.Contains(t, err.Error(), "de, en")
	assert.Contains(t, errors.FlattenHints(err), `"fr"`)
}

func TestSelectEmptyText(t *testing.T) {
	var text Text
	assert.True(t, text.IsEmpty())

	_, err := text.Select(English)
	assert.True(t, errors.Is(err, ErrMissingLanguage))
}

func TestCanonical(t *testing.T) {
	got, err := Text{"EN": "a", "de-DE": "b"}.Canonical()
	require.NoError(t, err)
	assert.Equal(t, Text{"en": "a", "de": "b"}, got)

	_, err = Text{"en": "a", "en-GB": "b"}.Canonical()
	assert.Error(t, err)

	got, err = Text(nil).Canonical()
	require.NoError(t, err)
	assert.Nil(t, got)
}
