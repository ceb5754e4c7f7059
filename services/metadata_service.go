package services

import (
	"sort"

	"itdocsapi/models"
	"itdocsapi/pkg/highlight"
	"itdocsapi/schema"
)

// Choice set names served from the highlighting registry.
const (
	ChoiceScriptLanguage = "script_language"
	ChoiceScriptStyle    = "script_style"
)

// MetadataService describes the enumerations and entities of the API.
type MetadataService interface {
	Choices() map[string][]models.Choice
	ChoiceSets() []string
	Schema() []schema.EntityInfo
}

type metadataService struct {
	reg *schema.Registry
}

// NewMetadataService creates a metadata service over the default registry.
func NewMetadataService() MetadataService {
	return &metadataService{reg: schema.Default()}
}

// NewMetadataServiceWithDeps creates a metadata service over reg.
func NewMetadataServiceWithDeps(reg *schema.Registry) MetadataService {
	return &metadataService{reg: reg}
}

func (s *metadataService) Choices() map[string][]models.Choice {
	out := make(map[string][]models.Choice, len(models.Choices)+2)
	for set, choices := range models.Choices {
		out[set] = choices
	}
	out[ChoiceScriptLanguage] = namesAsChoices(highlight.Languages())
	out[ChoiceScriptStyle] = namesAsChoices(highlight.Styles())
	return out
}

func (s *metadataService) ChoiceSets() []string {
	sets := make([]string, 0, len(models.Choices)+2)
	for set := range models.Choices {
		sets = append(sets, set)
	}
	sets = append(sets, ChoiceScriptLanguage, ChoiceScriptStyle)
	sort.Strings(sets)
	return sets
}

func (s *metadataService) Schema() []schema.EntityInfo {
	return s.reg.Describe()
}

func namesAsChoices(names []string) []models.Choice {
	out := make([]models.Choice, 0, len(names))
	for _, n := range names {
		out = append(out, models.Choice{Value: n, Label: n})
	}
	return out
}
