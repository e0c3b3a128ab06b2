package memory_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"polimanage/internal/storage/memory"
)

func TestLoadSeedFile(t *testing.T) {
	s := memory.NewStore()
	require.NoError(t, s.LoadSeedFile("testdata/seed.json"))
	ctx := context.Background()

	ps, err := memory.NewPistaRepo(s).GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, ps, 3)
	assert.Equal(t, int64(1), ps[0].ID)
	assert.Equal(t, "12.50", ps[0].PrecioHoraBase.StringFixed(2))
	assert.Equal(t, "18.00", ps[2].PrecioHoraBase.StringFixed(2))
	assert.Nil(t, ps[1].Superficie)

	cs, err := memory.NewClubRepo(s).GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, cs, 2)
	assert.Equal(t, "nuevo", cs[0].Slug)
	assert.Equal(t, "antiguo", cs[1].Slug)
	require.NotNil(t, cs[1].OwnerID)

	c, err := memory.NewClubRepo(s).GetBySlug(ctx, "dormido")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.False(t, c.IsActive)
}

func TestLoadSeed_Errors(t *testing.T) {
	s := memory.NewStore()
	assert.Error(t, s.LoadSeed(strings.NewReader(`{"pistas": [`)))
	assert.Error(t, s.LoadSeed(strings.NewReader(`{"clubs": [{"name": "no id"}]}`)))
	assert.Error(t, s.LoadSeedFile("testdata/missing.json"))
}
