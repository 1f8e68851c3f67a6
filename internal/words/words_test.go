package words

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Órbita", "orbita"},
		{"PIÃO", "piao"},
		{"força", "forca"},
		{"  lá-pis! ", "lapis"},
		{"abc123", "abc123"},
		{"", ""},
		{"---", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestDictionaryIsValid(t *testing.T) {
	d := New([]string{"pião", "lápis", "astro"})

	assert.True(t, d.IsValid("piao"))
	assert.True(t, d.IsValid("PIÃO"))
	assert.True(t, d.IsValid("Lapis"))
	assert.True(t, d.IsValid("astro"))
	assert.False(t, d.IsValid("astros"))
	assert.False(t, d.IsValid(""))
	assert.False(t, d.IsValid("!!"))
}

func TestDictionaryCanonicalSecretFor(t *testing.T) {
	d := New([]string{"pião", "órgão"})

	assert.Equal(t, "pião", d.CanonicalSecretFor("piao"))
	assert.Equal(t, "órgão", d.CanonicalSecretFor("ORGAO"))
	assert.Equal(t, "zebra", d.CanonicalSecretFor("zebra"), "unknown spelling is identity")
}

func TestDictionaryDeduplicatesByNormalizedForm(t *testing.T) {
	d := New([]string{"sábia", "sabiá", "sabia", "", "  "})

	assert.Equal(t, 1, d.Len())
	assert.Equal(t, "sábia", d.CanonicalSecretFor("sabia"), "first spelling wins")
}

func TestPickSecret(t *testing.T) {
	d := New([]string{"sol", "astro", "lunar", "cometa"},
		WithPicker(PickerFunc(func(n int) int { return n - 1 })))

	w, err := d.PickSecret(5)
	require.NoError(t, err)
	assert.Equal(t, "lunar", w)

	w, err = d.PickSecret(3)
	require.NoError(t, err)
	assert.Equal(t, "sol", w)
}

func TestPickSecretLengthCountsNormalizedRunes(t *testing.T) {
	d := New([]string{"órgão"})
	w, err := d.PickSecret(5)
	require.NoError(t, err)
	assert.Equal(t, "órgão", w)
}

func TestPickSecretErrors(t *testing.T) {
	_, err := New(nil).PickSecret(5)
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = New([]string{"sol"}).PickSecret(5)
	assert.ErrorIs(t, err, ErrNoWordOfLength)
	assert.False(t, errors.Is(err, ErrEmpty))
}

func TestPickSecretClampsBadPicker(t *testing.T) {
	d := New([]string{"astro", "lunar"}, WithPicker(PickerFunc(func(int) int { return 99 })))
	w, err := d.PickSecret(5)
	require.NoError(t, err)
	assert.Equal(t, "astro", w)
}

func TestPickSecretUniformOverCandidates(t *testing.T) {
	d := New([]string{"astro", "lunar", "solar", "terra"})
	seen := map[string]int{}
	for i := 0; i < 400; i++ {
		w, err := d.PickSecret(5)
		require.NoError(t, err)
		seen[w]++
	}
	assert.Len(t, seen, 4, "every candidate is eventually picked")
}

func TestCryptoPickerRange(t *testing.T) {
	for i := 0; i < 100; i++ {
		n := CryptoPicker{}.Pick(7)
		assert.GreaterOrEqual(t, n, 0)
		assert.Less(t, n, 7)
	}
}

func TestStats(t *testing.T) {
	d := New([]string{"sol", "mar", "astro"})
	assert.Equal(t, map[int]int{3: 2, 5: 1}, d.Stats())
}
