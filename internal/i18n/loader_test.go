package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRejectsUnknownDefault(t *testing.T) {
	_, err := Load("tet")
	assert.Error(t, err)
}

func TestPacksShareKeys(t *testing.T) {
	b, err := Load(LangEN)
	require.NoError(t, err)

	for key := range b.packs[LangEN] {
		assert.Contains(t, b.packs[LangID], key)
	}
	assert.Len(t, b.packs[LangID], len(b.packs[LangEN]))
}

func TestT(t *testing.T) {
	b, err := Load(LangEN)
	require.NoError(t, err)

	assert.Equal(t, "District/municipality not found", b.T(LangEN, DistrictNotFound))
	assert.Equal(t, "Found 3 search results", b.T(LangEN, SearchFound, 3))
	assert.Equal(t, "Ditemukan 0 hasil pencarian", b.T(LangID, SearchFound, 0))
	assert.Equal(t, "An error occurred: boom", b.T("pt", ErrorGeneric, "boom"))
	assert.Equal(t, "no.such.key", b.T(LangEN, "no.such.key"))
}

func TestResolve(t *testing.T) {
	b, err := Load(LangEN)
	require.NoError(t, err)

	tests := []struct {
		name     string
		explicit string
		accept   string
		want     string
	}{
		{name: "default", want: LangEN},
		{name: "explicit wins", explicit: "id", accept: "en-US", want: LangID},
		{name: "unsupported explicit", explicit: "pt", accept: "id-ID,id;q=0.9", want: LangID},
		{name: "accept with region", accept: "id-ID", want: LangID},
		{name: "first supported tag", accept: "pt-PT;q=1, tet, en;q=0.5", want: LangEN},
		{name: "nothing supported", accept: "pt-PT", want: LangEN},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.Resolve(tt.explicit, tt.accept))
		})
	}

	bid, err := Load(LangID)
	require.NoError(t, err)
	assert.Equal(t, LangID, bid.Resolve("", ""))
}
