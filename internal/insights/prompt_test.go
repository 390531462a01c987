package insights

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datainsight-lab/datainsight/internal/core/dataset"
)

func promptDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New([]string{"regiao", "vendas"}, []dataset.Record{
		{"regiao": "Sul", "vendas": 100},
		{"regiao": "Norte", "vendas": 300},
		{"regiao": "Sul", "vendas": 200},
		{"regiao": "Leste", "vendas": 50},
	})
	require.NoError(t, err)
	return ds
}

func TestBuildPrompt(t *testing.T) {
	prompt, err := BuildPrompt(promptDataset(t), "  Onde investir?  ")
	require.NoError(t, err)

	assert.Contains(t, prompt, "- Total de registros: 4\n")
	assert.Contains(t, prompt, "- Colunas: 2 (regiao, vendas)\n")
	assert.Contains(t, prompt, "vendas: total 650, média 162.50, mín 50, máx 300")
	assert.Contains(t, prompt, "regiao: Sul (2 de 3 valores distintos)")
	assert.Contains(t, prompt, `{"regiao":"Norte","vendas":300}`)
	assert.NotContains(t, prompt, `"Leste"`)
	assert.Contains(t, prompt, "PERGUNTA: Onde investir?\n")
}

func TestBuildPrompt_DefaultQuestion(t *testing.T) {
	prompt, err := BuildPrompt(promptDataset(t), "")
	require.NoError(t, err)
	assert.Contains(t, prompt, "PERGUNTA: "+DefaultQuestion)
}

func TestBuildPrompt_NonFiniteSampleValues(t *testing.T) {
	ds, err := dataset.New([]string{"x"}, []dataset.Record{{"x": math.Inf(1)}, {"x": 2.5}})
	require.NoError(t, err)

	prompt, err := BuildPrompt(ds, "")
	require.NoError(t, err)
	assert.Contains(t, prompt, `[{"x":null},{"x":2.5}]`)
}
