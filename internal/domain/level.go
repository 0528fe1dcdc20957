package domain

import "fmt"

// EntityLevel identifica um nível da hierarquia de entidades de anúncio.
// O dispatch por nível é feito via tabela de descritores, e não por
// comparação de strings espalhada pelo código.
type EntityLevel int

const (
	LevelCampaign EntityLevel = iota
	LevelAdSet
	LevelAd
)

// LevelDescriptor mapeia um nível para os nomes físicos usados na camada
// de armazenamento e na API do provedor.
type LevelDescriptor struct {
	Name         string // identificador usado em rotas e logs
	StorageTable string // tabela que espelha as entidades
	ParentColumn string // coluna que referencia o nível pai
	MetricsTable string // tabela de métricas diárias do nível
	EdgeName     string // nome da edge na API Graph do provedor
}

var levelDescriptors = map[EntityLevel]LevelDescriptor{
	LevelCampaign: {
		Name:         "campaign",
		StorageTable: "campaigns",
		ParentColumn: "ad_account_id",
		MetricsTable: "campaign_metrics",
		EdgeName:     "campaigns",
	},
	LevelAdSet: {
		Name:         "adset",
		StorageTable: "ad_sets",
		ParentColumn: "campaign_id",
		MetricsTable: "ad_set_metrics",
		EdgeName:     "adsets",
	},
	LevelAd: {
		Name:         "ad",
		StorageTable: "ads",
		ParentColumn: "ad_set_id",
		MetricsTable: "ad_metrics",
		EdgeName:     "ads",
	},
}

// Descriptor retorna o descritor do nível. Entra em pânico para níveis
// desconhecidos, o que indica erro de programação e não de entrada.
func (l EntityLevel) Descriptor() LevelDescriptor {
	d, ok := levelDescriptors[l]
	if !ok {
		panic(fmt.Sprintf("nível de entidade desconhecido: %d", l))
	}
	return d
}

func (l EntityLevel) String() string {
	return l.Descriptor().Name
}

// ParseEntityLevel converte o identificador usado em rotas ("campaign",
// "adset", "ad") para o nível tipado.
func ParseEntityLevel(name string) (EntityLevel, error) {
	for level, d := range levelDescriptors {
		if d.Name == name {
			return level, nil
		}
	}
	return 0, fmt.Errorf("nível de entidade inválido: %q", name)
}
