package wizard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// Step шаг мастера
type Step int

const (
	StepUpload Step = iota + 1
	StepCriteria
	StepCompanies
	StepDocuments
)

// Valid проверяет, что шаг входит в диапазон 1..4
func (s Step) Valid() bool {
	return s >= StepUpload && s <= StepDocuments
}

// SelectionCriterion критерий отбора
type SelectionCriterion struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Selected    bool   `json:"selected"`
}

// AttributionCriterion критерий присуждения с весом 0..100, шаг 5
type AttributionCriterion struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Weight int    `json:"weight"`
}

// MatchDetail оценка компании по одному критерию
type MatchDetail struct {
	Criterion string
	Score     int
}

// MatchDetails упорядоченный набор оценок; в JSON это объект criterion -> score
type MatchDetails []MatchDetail

// UnmarshalJSON сохраняет порядок ключей объекта
func (md *MatchDetails) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*md = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("matchDetails: expected object, got %v", tok)
	}

	details := MatchDetails{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("matchDetails: unexpected key %v", keyTok)
		}
		var score float64
		if err := dec.Decode(&score); err != nil {
			return fmt.Errorf("matchDetails[%s]: %w", key, err)
		}
		details = append(details, MatchDetail{Criterion: key, Score: int(math.Round(score))})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*md = details
	return nil
}

// MarshalJSON пишет объект в исходном порядке
func (md MatchDetails) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, d := range md {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(d.Criterion)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		fmt.Fprintf(&buf, "%d", d.Score)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MatchedCompany компания, оцененная сервисом подбора
type MatchedCompany struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Domain         string       `json:"domain"`
	Location       string       `json:"location"`
	Certifications []string     `json:"certifications"`
	CA             string       `json:"ca"`
	Employees      string       `json:"employees"`
	Score          int          `json:"score"`
	Selected       bool         `json:"selected"`
	MatchDetails   MatchDetails `json:"matchDetails"`
}

func (c MatchedCompany) clone() MatchedCompany {
	out := c
	if c.Certifications != nil {
		out.Certifications = append([]string(nil), c.Certifications...)
	}
	if c.MatchDetails != nil {
		out.MatchDetails = append(MatchDetails(nil), c.MatchDetails...)
	}
	return out
}

// ProjectData данные проекта, заполняемые на шаге 4
type ProjectData struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UploadedFile сведения о загруженном техническом задании
type UploadedFile struct {
	Name     string `json:"name"`
	MimeType string `json:"mimeType"`
	Size     int64  `json:"size"`
}

// GeneratedDocument сгенерированный документ консультации
type GeneratedDocument struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Icon     string `json:"icon"`
	FileName string `json:"fileName"`
	FileURL  string `json:"fileUrl"`
}

// State состояние мастера одной сессии
type State struct {
	CurrentStep         Step
	UploadedFile        *UploadedFile
	ExtractedText       string
	Keywords            []string
	SelectionCriteria   []SelectionCriterion
	AttributionCriteria []AttributionCriterion
	MatchedCompanies    []MatchedCompany
	SelectedCompanies   []MatchedCompany
	ProjectData         ProjectData
	IsProcessing        bool

	// Сообщение для повторной попытки на шаге 1
	UploadError string
	// Данные шагов 2 и 3 получены
	Analyzed bool
	Matched  bool

	GeneratedDocuments []GeneratedDocument
}

// NewState создает состояние нового мастера
func NewState() State {
	return State{CurrentStep: StepUpload}
}

// Clone возвращает глубокую копию состояния
func (s State) Clone() State {
	out := s
	if s.UploadedFile != nil {
		f := *s.UploadedFile
		out.UploadedFile = &f
	}
	out.Keywords = append([]string(nil), s.Keywords...)
	out.SelectionCriteria = append([]SelectionCriterion(nil), s.SelectionCriteria...)
	out.AttributionCriteria = append([]AttributionCriterion(nil), s.AttributionCriteria...)
	out.MatchedCompanies = cloneCompanies(s.MatchedCompanies)
	out.SelectedCompanies = cloneCompanies(s.SelectedCompanies)
	out.GeneratedDocuments = append([]GeneratedDocument(nil), s.GeneratedDocuments...)
	return out
}

func cloneCompanies(in []MatchedCompany) []MatchedCompany {
	if in == nil {
		return nil
	}
	out := make([]MatchedCompany, len(in))
	for i, c := range in {
		out[i] = c.clone()
	}
	return out
}
