// Package registry is the static catalog of canonical recognition fields:
// which fields exist, how they are input, which recognition section exposes
// them, and which downstream documents reuse them. The tables are compiled in,
// loaded once, and immutable.
package registry

// FieldType is the input type of a field
type FieldType string

const (
	TypeText     FieldType = "text"
	TypeTextarea FieldType = "textarea"
	TypeSelect   FieldType = "select"
	TypeDatetime FieldType = "datetime"
)

// Document identifiers for field reuse
const (
	DocRecognition         = "recognition"
	DocPhotoReport         = "photo_report"
	DocInvestigationReport = "investigation_report"
)

// Recognition section ids. The set is fixed and non-extensible.
const (
	SectionPreliminary    = "preliminary"
	SectionCommunications = "communications"
	SectionTeam           = "team"
	SectionWeather        = "weather"
	SectionLocation       = "location"
	SectionEvidence       = "evidence"
)

// FieldDefinition describes one canonical field
type FieldDefinition struct {
	Key      string    `json:"key"`
	Label    string    `json:"label"`
	Type     FieldType `json:"type"`
	Options  []string  `json:"options,omitempty"`
	ReusedBy []string  `json:"reusedBy,omitempty"`
}

// Section is one visuographic recognition section with its field keys
type Section struct {
	ID        string   `json:"id"`
	Label     string   `json:"label"`
	FieldKeys []string `json:"fieldKeys"`
}

var fieldDefs = []FieldDefinition{
	{Key: "case.bo", Label: "Boletim de Ocorrência", Type: TypeText,
		ReusedBy: []string{DocRecognition, DocPhotoReport, DocInvestigationReport}},
	{Key: "case.natureza", Label: "Natureza da Ocorrência", Type: TypeText,
		ReusedBy: []string{DocRecognition, DocPhotoReport, DocInvestigationReport}},
	{Key: "case.dataHoraFato", Label: "Data e Hora do Fato", Type: TypeDatetime,
		ReusedBy: []string{DocRecognition, DocInvestigationReport}},
	{Key: "case.circunscricao", Label: "Circunscrição", Type: TypeText,
		ReusedBy: []string{DocRecognition}},
	{Key: "case.unidade", Label: "Unidade", Type: TypeText,
		ReusedBy: []string{DocRecognition, DocPhotoReport}},

	{Key: "comm.solicitante", Label: "Solicitante", Type: TypeText,
		ReusedBy: []string{DocRecognition}},
	{Key: "comm.meioAcionamento", Label: "Meio de Acionamento", Type: TypeSelect,
		Options:  []string{"COPOM", "190", "Telefone", "Presencial", "Outro"},
		ReusedBy: []string{DocRecognition}},
	{Key: "comm.horaAcionamento", Label: "Hora do Acionamento", Type: TypeDatetime,
		ReusedBy: []string{DocRecognition, DocInvestigationReport}},
	{Key: "comm.horaChegada", Label: "Hora de Chegada ao Local", Type: TypeDatetime,
		ReusedBy: []string{DocRecognition, DocInvestigationReport}},

	{Key: "team.peritoResponsavel", Label: "Perito Responsável", Type: TypeText,
		ReusedBy: []string{DocRecognition, DocPhotoReport, DocInvestigationReport}},
	{Key: "team.fotografo", Label: "Fotógrafo", Type: TypeText,
		ReusedBy: []string{DocRecognition, DocPhotoReport}},
	{Key: "team.motorista", Label: "Motorista", Type: TypeText,
		ReusedBy: []string{DocRecognition}},

	{Key: "environment.iluminacao", Label: "Iluminação", Type: TypeSelect,
		Options:  []string{"Natural (dia)", "Artificial (noite)", "Mista", "Inexistente"},
		ReusedBy: []string{DocRecognition, DocInvestigationReport}},
	{Key: "environment.tempo", Label: "Condições do Tempo", Type: TypeSelect,
		Options:  []string{"Bom", "Nublado", "Chuvoso", "Garoa"},
		ReusedBy: []string{DocRecognition}},
	{Key: "environment.temperatura", Label: "Temperatura", Type: TypeText,
		ReusedBy: []string{DocRecognition}},
	{Key: "environment.visibilidade", Label: "Visibilidade", Type: TypeSelect,
		Options:  []string{"Boa", "Regular", "Ruim"},
		ReusedBy: []string{DocRecognition}},

	{Key: "location.endereco", Label: "Endereço", Type: TypeText,
		ReusedBy: []string{DocRecognition, DocPhotoReport, DocInvestigationReport}},
	{Key: "location.cep", Label: "CEP", Type: TypeText,
		ReusedBy: []string{DocRecognition}},
	{Key: "location.bairro", Label: "Bairro", Type: TypeText,
		ReusedBy: []string{DocRecognition, DocInvestigationReport}},
	{Key: "location.cidade", Label: "Cidade", Type: TypeText,
		ReusedBy: []string{DocRecognition, DocPhotoReport, DocInvestigationReport}},
	{Key: "location.estado", Label: "Estado", Type: TypeText,
		ReusedBy: []string{DocRecognition}},
	{Key: "location.tipoLocal", Label: "Tipo de Local", Type: TypeSelect,
		Options:  []string{"Interno", "Externo", "Misto", "Veículo"},
		ReusedBy: []string{DocRecognition, DocInvestigationReport}},
	{Key: "location.preservacao", Label: "Preservação do Local", Type: TypeTextarea,
		ReusedBy: []string{DocRecognition, DocInvestigationReport}},

	{Key: "evidence.tipoVestigios", Label: "Tipos de Vestígios", Type: TypeTextarea,
		ReusedBy: []string{DocRecognition, DocInvestigationReport}},
	{Key: "evidence.armas", Label: "Armas Encontradas", Type: TypeText,
		ReusedBy: []string{DocRecognition, DocInvestigationReport}},
	{Key: "evidence.projeteis", Label: "Projéteis e Estojos", Type: TypeText,
		ReusedBy: []string{DocRecognition, DocInvestigationReport}},
	{Key: "evidence.observacoes", Label: "Observações", Type: TypeTextarea,
		ReusedBy: []string{DocRecognition}},
}

var sections = []Section{
	{ID: SectionPreliminary, Label: "Preliminares", FieldKeys: []string{
		"case.bo", "case.natureza", "case.dataHoraFato", "case.circunscricao", "case.unidade",
	}},
	{ID: SectionCommunications, Label: "Comunicações", FieldKeys: []string{
		"comm.solicitante", "comm.meioAcionamento", "comm.horaAcionamento", "comm.horaChegada",
	}},
	{ID: SectionTeam, Label: "Equipe", FieldKeys: []string{
		"team.peritoResponsavel", "team.fotografo", "team.motorista",
	}},
	{ID: SectionWeather, Label: "Condições Ambientais", FieldKeys: []string{
		"environment.iluminacao", "environment.tempo", "environment.temperatura", "environment.visibilidade",
	}},
	{ID: SectionLocation, Label: "Local", FieldKeys: []string{
		"location.endereco", "location.cep", "location.bairro", "location.cidade",
		"location.estado", "location.tipoLocal", "location.preservacao",
	}},
	{ID: SectionEvidence, Label: "Vestígios", FieldKeys: []string{
		"evidence.tipoVestigios", "evidence.armas", "evidence.projeteis", "evidence.observacoes",
	}},
}

var fieldIndex = buildFieldIndex()

func buildFieldIndex() map[string]FieldDefinition {
	idx := make(map[string]FieldDefinition, len(fieldDefs))
	for _, def := range fieldDefs {
		idx[def.Key] = def
	}
	return idx
}

// FieldByKey returns the definition for key. The boolean is false for unknown
// keys; callers must treat unknown keys defensively (e.g., display the raw key).
func FieldByKey(key string) (FieldDefinition, bool) {
	def, ok := fieldIndex[key]
	return def, ok
}

// HasField reports whether key exists in the registry
func HasField(key string) bool {
	_, ok := fieldIndex[key]
	return ok
}

// FieldReuse returns the document identifiers that reuse the field.
// Returns nil for unknown keys, never an error.
func FieldReuse(key string) []string {
	def, ok := fieldIndex[key]
	if !ok {
		return nil
	}
	return append([]string(nil), def.ReusedBy...)
}

// Fields returns all field definitions in declaration order
func Fields() []FieldDefinition {
	return append([]FieldDefinition(nil), fieldDefs...)
}

// Sections returns the recognition sections in display order
func Sections() []Section {
	return append([]Section(nil), sections...)
}

// SectionByID returns the section with the given id
func SectionByID(id string) (Section, bool) {
	for _, s := range sections {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}

// HasSection reports whether id names a recognition section
func HasSection(id string) bool {
	_, ok := SectionByID(id)
	return ok
}

// SectionFieldKeys returns the field keys exposed by the section, or nil for
// an unknown section id.
func SectionFieldKeys(sectionID string) []string {
	s, ok := SectionByID(sectionID)
	if !ok {
		return nil
	}
	return append([]string(nil), s.FieldKeys...)
}

// AllSectionFieldKeys returns every field key across all recognition sections,
// in section order. This is the denominator of recognition progress.
func AllSectionFieldKeys() []string {
	var keys []string
	for _, s := range sections {
		keys = append(keys, s.FieldKeys...)
	}
	return keys
}
