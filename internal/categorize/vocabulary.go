package categorize

import "github.com/TobiSchelling/NewsCurator/internal/news"

// vocabulary is an ordered, lower-cased term set for one category.
type vocabulary struct {
	label string
	terms []string
	set   map[string]struct{}
}

func newVocabulary(label string, terms ...string) vocabulary {
	set := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		set[t] = struct{}{}
	}
	return vocabulary{label: label, terms: terms, set: set}
}

func (v vocabulary) has(term string) bool {
	_, ok := v.set[term]
	return ok
}

var (
	technology = newVocabulary(news.CategoryTechnology,
		"tecnologia", "tech", "inteligência artificial", "ia", "machine learning",
		"blockchain", "criptomoeda", "bitcoin", "startup", "app", "aplicativo",
		"software", "hardware", "internet", "digital", "inovação", "5g",
		"android", "ios", "google", "apple", "microsoft", "meta", "tesla",
		"robô", "automação", "dados", "cloud", "nuvem", "cybersecurity",
	)

	politics = newVocabulary(news.CategoryPolitics,
		"política", "governo", "presidente", "ministro", "congresso", "senado",
		"câmara", "deputado", "senador", "eleição", "voto", "partido",
		"reforma", "lei", "projeto", "pec", "medida provisória", "stf",
		"supremo", "justiça", "tribunal", "democracia", "constituição",
	)

	economy = newVocabulary(news.CategoryEconomy,
		"economia", "econômico", "financeiro", "mercado", "bolsa", "ação",
		"investimento", "pib", "inflação", "juros", "selic", "dólar",
		"real", "moeda", "banco", "crédito", "emprego", "desemprego",
		"renda", "salário", "imposto", "tributário", "fiscal", "orçamento",
	)

	sports = newVocabulary(news.CategorySports,
		"esporte", "futebol", "basquete", "vôlei", "tênis", "natação",
		"atletismo", "olimpíadas", "copa", "mundial", "campeonato",
		"jogador", "atleta", "time", "clube", "técnico", "gol",
		"vitória", "derrota", "jogo", "partida", "competição",
	)

	health = newVocabulary(news.CategoryHealth,
		"saúde", "medicina", "médico", "hospital", "tratamento", "doença",
		"vacina", "remédio", "medicamento", "sus", "anvisa", "covid",
		"pandemia", "vírus", "bactéria", "pesquisa médica", "terapia",
		"cirurgia", "diagnóstico", "prevenção", "sintoma",
	)

	science = newVocabulary(news.CategoryScience,
		"ciência", "pesquisa", "estudo", "descoberta", "cientista",
		"universidade", "laboratório", "experimento", "nasa", "espaço",
		"astronomia", "física", "química", "biologia", "genética",
		"dna", "clima", "meio ambiente", "sustentabilidade", "energia",
	)
)

// titleOrder is the fixed check order for titles; earlier sets win.
var titleOrder = []vocabulary{technology, politics, economy, sports, health, science}

// keywordOrder is consulted for article keywords. Sports, health and science
// are not part of the keyword fallback.
var keywordOrder = []vocabulary{technology, politics, economy}
