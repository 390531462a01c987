package dataset

import (
	"math"
	"math/rand/v2"
	"time"
)

const (
	DefaultSampleRows = 100
	DefaultSampleSeed = 42
)

var (
	sampleSellers = []string{
		"João Silva", "Maria Santos", "Pedro Costa", "Ana Lima",
		"Carlos Rocha", "Lucia Ferreira", "Roberto Alves", "Fernanda Dias",
		"Marcos Oliveira", "Patricia Souza", "Ricardo Mendes", "Juliana Castro",
	}
	sampleProducts = []string{
		"Smartphone Pro", "Laptop Gamer", "Tablet Ultra", "Smartwatch Fit",
		"Fones Bluetooth", "Camera Digital", "Console Game", "Monitor 4K",
		"Teclado Mecânico", "Mouse Gamer", "SSD 1TB", "Placa de Vídeo",
	}
	sampleRegions    = []string{"Norte", "Sul", "Leste", "Oeste", "Centro"}
	sampleCategories = []string{"Eletrônicos", "Informática", "Games", "Acessórios", "Mobile"}
	sampleChannels   = []string{"Online", "Loja Física", "Marketplace", "Telefone", "App Mobile"}
	sampleMonths     = []string{
		"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
		"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
	}

	// mean and standard deviation of a sale per category
	sampleSalesDist = map[string][2]float64{
		"Eletrônicos": {25000, 8000},
		"Informática": {35000, 12000},
		"Games":       {15000, 5000},
		"Mobile":      {20000, 7000},
		"Acessórios":  {8000, 3000},
	}
)

// SampleHeader is the column order of generated sales datasets.
var SampleHeader = []string{
	"id", "vendas", "custo", "lucro", "margem", "regiao", "produto", "categoria",
	"mes", "vendedor", "canal", "satisfacao", "quantidade", "desconto", "tempo_entrega", "data_venda",
}

// Sample generates a synthetic sales dataset. The same (rows, seed) pair
// always yields the same dataset.
func Sample(rows int, seed uint64) *Dataset {
	if rows <= 0 {
		rows = DefaultSampleRows
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	records := make([]Record, rows)
	for i := 0; i < rows; i++ {
		category := pick(rng, sampleCategories)
		dist := sampleSalesDist[category]
		sales := int64(dist[0] + rng.NormFloat64()*dist[1])
		if sales < 1000 {
			sales = 1000
		}
		cost := int64(float64(sales) * (0.4 + rng.Float64()*0.3))
		profit := sales - cost
		margin := float64(profit) / float64(sales) * 100

		var satisfaction int64
		switch {
		case margin > 40:
			satisfaction = weighted(rng, []int64{4, 5}, []float64{0.3, 0.7})
		case margin > 25:
			satisfaction = weighted(rng, []int64{3, 4, 5}, []float64{0.2, 0.5, 0.3})
		default:
			satisfaction = weighted(rng, []int64{1, 2, 3}, []float64{0.3, 0.4, 0.3})
		}

		channel := pick(rng, sampleChannels)
		var delivery int64
		switch channel {
		case "Online":
			delivery = 1 + rng.Int64N(6)
		case "Loja Física":
			delivery = 0
		default:
			delivery = 2 + rng.Int64N(13)
		}

		records[i] = Record{
			"id":            int64(i + 1),
			"vendas":        sales,
			"custo":         cost,
			"lucro":         profit,
			"margem":        round(margin, 2),
			"regiao":        pick(rng, sampleRegions),
			"produto":       pick(rng, sampleProducts),
			"categoria":     category,
			"mes":           pick(rng, sampleMonths),
			"vendedor":      pick(rng, sampleSellers),
			"canal":         channel,
			"satisfacao":    satisfaction,
			"quantidade":    1 + rng.Int64N(49),
			"desconto":      round(rng.Float64()*0.30, 3),
			"tempo_entrega": delivery,
			"data_venda":    start.AddDate(0, 0, rng.IntN(366)).Format("2006-01-02"),
		}
	}

	// header and records are generated together, so New cannot fail
	ds, err := New(SampleHeader, records)
	if err != nil {
		panic("dataset: sample generator produced an inconsistent dataset: " + err.Error())
	}
	return ds
}

func pick(rng *rand.Rand, values []string) string {
	return values[rng.IntN(len(values))]
}

func weighted(rng *rand.Rand, values []int64, weights []float64) int64 {
	r := rng.Float64()
	acc := 0.0
	for i, w := range weights {
		acc += w
		if r < acc {
			return values[i]
		}
	}
	return values[len(values)-1]
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
