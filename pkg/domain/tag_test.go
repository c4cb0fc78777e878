package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/cellfill/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestTag_JSON(t *testing.T) {
	data, err := json.Marshal(domain.Sequence{A, D, L})
	require.NoError(t, err)
	assert.JSONEq(t, `["alive","dead","life"]`, string(data))

	var seq domain.Sequence
	require.NoError(t, json.Unmarshal([]byte(`["Alive","dead","LIFE"]`), &seq))
	assert.Equal(t, domain.Sequence{A, D, L}, seq)

	err = json.Unmarshal([]byte(`["zombie"]`), &seq)
	assert.ErrorIs(t, err, domain.ErrUnknownTag)
}

func TestTag_YAML(t *testing.T) {
	var snap domain.Snapshot
	require.NoError(t, yaml.Unmarshal([]byte("session_id: s1\ncells: [alive, life]\n"), &snap))
	assert.Equal(t, "s1", snap.SessionID)
	assert.Equal(t, domain.Sequence{A, L}, snap.Cells)
}

func TestTag_InvalidDoesNotMarshal(t *testing.T) {
	_, err := json.Marshal(domain.Tag(42))
	assert.Error(t, err)
	assert.False(t, domain.Tag(0).Valid())
	assert.Equal(t, "tag(42)", domain.Tag(42).String())
}

func TestInfo(t *testing.T) {
	alive := domain.Info(domain.Alive)
	assert.Equal(t, "Живая", alive.Label)
	assert.Equal(t, "и шевелится!", alive.Description)
	assert.Equal(t, "ic_alive", alive.Icon)
	assert.Equal(t, "#FFF176", alive.Color)

	dead := domain.InfoIn(domain.Dead, domain.LocaleEN)
	assert.Equal(t, "Dead", dead.Label)
	assert.Equal(t, "#A5D6A7", dead.Color)

	life := domain.InfoIn(domain.Life, domain.Locale("xx"))
	assert.Equal(t, "Жизнь", life.Label)
	assert.Equal(t, "#BA68C8", life.Color)

	assert.Equal(t, domain.Metadata{Tag: 9}, domain.Info(9))
}

func TestCatalog(t *testing.T) {
	cat := domain.Catalog(domain.LocaleEN)
	require.Len(t, cat, 3)
	assert.Equal(t, []string{"Alive", "Dead", "Life"}, []string{cat[0].Label, cat[1].Label, cat[2].Label})
}

func TestParseLocale(t *testing.T) {
	assert.Equal(t, domain.LocaleEN, domain.ParseLocale("en"))
	assert.Equal(t, domain.LocaleRU, domain.ParseLocale(""))
	assert.Equal(t, domain.LocaleRU, domain.ParseLocale("fr"))
}
