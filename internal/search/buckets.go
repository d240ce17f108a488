package search

import "strings"

// bucket is a fixed title and keyword pool selected by matching the topic.
type bucket struct {
	name     string
	match    []string
	titles   []string
	keywords []string
}

var publishers = []string{
	"G1", "Folha de S.Paulo", "O Globo", "UOL", "R7", "BBC Brasil",
	"CNN Brasil", "Estadão", "Valor Econômico", "TechCrunch Brasil",
}

var technologyBucket = bucket{
	name:  "technology",
	match: []string{"tecnologia", "tech", "ia", "inteligência"},
	titles: []string{
		"Nova atualização do Android traz recursos de IA avançados",
		"Startup brasileira desenvolve solução inovadora para IoT",
		"Inteligência artificial revoluciona setor de saúde no Brasil",
		"Criptomoedas ganham regulamentação mais clara no país",
		"5G chega a mais cidades brasileiras neste mês",
	},
	keywords: []string{"inovação", "digital", "startup", "software"},
}

var politicsBucket = bucket{
	name:  "politics",
	match: []string{"política", "governo", "congresso"},
	titles: []string{
		"Congresso aprova nova lei de proteção de dados",
		"Presidente anuncia investimentos em infraestrutura",
		"Reforma tributária avança no Senado Federal",
		"Ministério da Educação lança programa de digitalização",
		"Governo federal apresenta plano de sustentabilidade",
	},
	keywords: []string{"governo", "lei", "congresso", "reforma"},
}

var genericKeywords = []string{"mercado", "economia", "brasil", "setor"}

// bucketFor picks the pool for a topic. Technology is checked before politics.
func bucketFor(topic string) bucket {
	lower := strings.ToLower(topic)
	for _, b := range []bucket{technologyBucket, politicsBucket} {
		for _, term := range b.match {
			if strings.Contains(lower, term) {
				return b
			}
		}
	}
	return genericBucket(topic)
}

func genericBucket(topic string) bucket {
	return bucket{
		name: "generic",
		titles: []string{
			"Novidades sobre " + topic + " movimentam o mercado",
			"Especialistas analisam tendências em " + topic,
			"Setor de " + topic + " apresenta crescimento significativo",
			"Inovações em " + topic + " prometem transformar indústria",
			"Estudo revela impacto de " + topic + " na economia",
		},
		keywords: genericKeywords,
	}
}

// Keywords returns the literal topic followed by its bucket's terms.
func Keywords(topic string) []string {
	b := bucketFor(topic)
	kw := make([]string, 0, len(b.keywords)+1)
	kw = append(kw, topic)
	return append(kw, b.keywords...)
}
