package insights

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/datainsight-lab/datainsight/internal/core/dataset"
	"github.com/datainsight-lab/datainsight/internal/render"
)

const (
	// DefaultQuestion is asked when the caller does not supply one.
	DefaultQuestion = "Quais são os principais padrões, riscos e oportunidades nestes dados?"

	sampleRows = 3
	maxWords   = 500
)

// BuildPrompt describes the dataset to the model: row and column counts,
// numeric totals and means, the most frequent category values and a short
// sample of records. Only aggregates and the sample leave the process.
func BuildPrompt(ds *dataset.Dataset, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		question = DefaultQuestion
	}

	summary := dataset.Summarize(ds)
	rows := ds.Head(sampleRows)
	for _, row := range rows {
		for k, v := range row {
			if _, ok := v.(float64); ok {
				if _, finite := dataset.Finite(v); !finite {
					row[k] = nil
				}
			}
		}
	}
	sample, err := json.Marshal(rows)
	if err != nil {
		return "", fmt.Errorf("encoding sample rows: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("Analise estes dados de negócio em português brasileiro:\n\n")
	sb.WriteString("DADOS:\n")
	fmt.Fprintf(&sb, "- Total de registros: %d\n", summary.Rows)
	fmt.Fprintf(&sb, "- Colunas: %d (%s)\n", len(summary.Columns), strings.Join(ds.ColumnNames(), ", "))

	if len(summary.Numeric) > 0 {
		sb.WriteString("- Métricas numéricas:\n")
		for _, s := range summary.Numeric {
			if s.Count == 0 {
				continue
			}
			fmt.Fprintf(&sb, "  - %s: total %s, média %s, mín %s, máx %s\n",
				s.Column,
				render.FormatNumber(s.Sum),
				render.FormatNumber(s.Mean),
				render.FormatNumber(s.Min),
				render.FormatNumber(s.Max))
		}
	}
	if len(summary.Top) > 0 {
		sb.WriteString("- Valores mais frequentes:\n")
		for _, top := range summary.Top {
			fmt.Fprintf(&sb, "  - %s: %s (%d de %d valores distintos)\n", top.Column, top.Value, top.Frequency, top.Distinct)
		}
	}
	fmt.Fprintf(&sb, "- Dados de exemplo: %s\n\n", sample)

	fmt.Fprintf(&sb, "PERGUNTA: %s\n\n", question)
	sb.WriteString("Responda de forma clara e objetiva com insights práticos para negócios.\n")
	fmt.Fprintf(&sb, "Máximo %d palavras.\n", maxWords)
	return sb.String(), nil
}
