package wizard

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Переходы мастера: чистые функции State -> State без ввода-вывода.

const (
	// NotSpecified значение по умолчанию для незаполненных полей
	NotSpecified = "Non spécifié"
	// ManualMatchDetail критерий, которым помечаются компании, добавленные вручную
	ManualMatchDetail = "Ajout manuel"
	// ManualCompanyPrefix префикс идентификатора компании, добавленной вручную
	ManualCompanyPrefix = "manual_"

	maxWeight  = 100
	weightStep = 5
)

// ManualCertifications сертификаты, доступные в форме ручного добавления
var ManualCertifications = []string{"MASE", "ISO 9001", "ISO 14001", "QUALIBAT"}

// AttributionTotal сумма весов и признак корректности (ровно 100)
type AttributionTotal struct {
	Total int  `json:"total"`
	Valid bool `json:"valid"`
}

// ManualCompanyInput данные формы ручного добавления компании
type ManualCompanyInput struct {
	Name           string   `json:"name"`
	Location       string   `json:"location"`
	Domain         string   `json:"domain"`
	CA             string   `json:"ca"`
	Employees      string   `json:"employees"`
	Certifications []string `json:"certifications"`
}

// CanEnter проверяет, что шаг доступен: назад на любой шаг,
// вперед только на следующий и только при выполненном предыдущем
func CanEnter(s State, step Step) error {
	if !step.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidStep, step)
	}
	if step <= s.CurrentStep {
		return nil
	}
	if step > s.CurrentStep+1 {
		return fmt.Errorf("%w: step %d is not next to step %d", ErrStepLocked, step, s.CurrentStep)
	}
	if step >= StepCriteria && !s.Analyzed {
		return fmt.Errorf("%w: step %d requires document analysis", ErrStepLocked, step)
	}
	if step >= StepCompanies && !s.Matched {
		return fmt.Errorf("%w: step %d requires company matching", ErrStepLocked, step)
	}
	return nil
}

// GoToStep переходит на шаг без потери данных
func GoToStep(s State, step Step) (State, error) {
	if err := CanEnter(s, step); err != nil {
		return s, err
	}
	out := s.Clone()
	out.CurrentStep = step
	return out, nil
}

// BeginProcessing выставляет флаг обработки; повторный вызов отклоняется
func BeginProcessing(s State) (State, error) {
	if s.IsProcessing {
		return s, ErrProcessing
	}
	out := s.Clone()
	out.IsProcessing = true
	return out, nil
}

// EndProcessing снимает флаг обработки
func EndProcessing(s State) State {
	out := s.Clone()
	out.IsProcessing = false
	return out
}

// BeginUpload начинает загрузку: флаг обработки и сброс прошлой ошибки
func BeginUpload(s State) (State, error) {
	out, err := BeginProcessing(s)
	if err != nil {
		return s, err
	}
	out.UploadError = ""
	return out, nil
}

// ApplyUploadFailure сохраняет сообщение для повторной попытки и освобождает мастер
func ApplyUploadFailure(s State, message string) State {
	out := EndProcessing(s)
	out.UploadError = message
	out.CurrentStep = StepUpload
	return out
}

// ClearUploadError возвращает шаг 1 к выбору файла
func ClearUploadError(s State) State {
	out := s.Clone()
	out.UploadError = ""
	return out
}

// ApplyAnalysis сохраняет результат разбора и анализа и переходит на шаг 2.
// Прежний подбор компаний и документы относятся к старым критериям и сбрасываются.
func ApplyAnalysis(s State, file UploadedFile, text string, analysis Analysis) State {
	out := EndProcessing(s)
	f := file
	out.UploadedFile = &f
	out.ExtractedText = text
	out.Keywords = append([]string{}, analysis.Keywords...)
	out.SelectionCriteria = append([]SelectionCriterion{}, analysis.SelectionCriteria...)
	out.AttributionCriteria = append([]AttributionCriterion{}, analysis.AttributionCriteria...)
	out.UploadError = ""
	out.Analyzed = true
	out.Matched = false
	out.MatchedCompanies = nil
	out.SelectedCompanies = nil
	out.GeneratedDocuments = nil
	out.CurrentStep = StepCriteria
	return out
}

// ApplyMatches сохраняет подобранные компании (все выбраны) и переходит на шаг 3
func ApplyMatches(s State, companies []MatchedCompany) State {
	out := EndProcessing(s)
	out.MatchedCompanies = make([]MatchedCompany, len(companies))
	out.SelectedCompanies = make([]MatchedCompany, len(companies))
	for i, c := range companies {
		c = c.clone()
		c.Selected = true
		out.MatchedCompanies[i] = c
		out.SelectedCompanies[i] = c.clone()
	}
	out.Matched = true
	out.GeneratedDocuments = nil
	out.CurrentStep = StepCompanies
	return out
}

// SelectedCriteria возвращает только отмеченные критерии отбора
func SelectedCriteria(s State) []SelectionCriterion {
	selected := make([]SelectionCriterion, 0, len(s.SelectionCriteria))
	for _, c := range s.SelectionCriteria {
		if c.Selected {
			selected = append(selected, c)
		}
	}
	return selected
}

// ToggleSelectionCriterion меняет флаг selected одного критерия
func ToggleSelectionCriterion(s State, id int, selected bool) (State, error) {
	idx := indexOfSelection(s.SelectionCriteria, id)
	if idx < 0 {
		return s, fmt.Errorf("%w: selection criterion %d", ErrCriterionNotFound, id)
	}
	out := s.Clone()
	out.SelectionCriteria[idx].Selected = selected
	return out, nil
}

// ValidateWeight проверяет вес: 0..100 с шагом 5
func ValidateWeight(weight int) error {
	if weight < 0 || weight > maxWeight || weight%weightStep != 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWeight, weight)
	}
	return nil
}

// PreviewAttributionWeight проверяет значение ползунка без изменения состояния
func PreviewAttributionWeight(s State, id, weight int) (int, error) {
	if indexOfAttribution(s.AttributionCriteria, id) < 0 {
		return 0, fmt.Errorf("%w: attribution criterion %d", ErrCriterionNotFound, id)
	}
	if err := ValidateWeight(weight); err != nil {
		return 0, err
	}
	return weight, nil
}

// CommitAttributionWeight сохраняет вес и пересчитывает сумму
func CommitAttributionWeight(s State, id, weight int) (State, AttributionTotal, error) {
	idx := indexOfAttribution(s.AttributionCriteria, id)
	if idx < 0 {
		return s, ComputeAttributionTotal(s.AttributionCriteria), fmt.Errorf("%w: attribution criterion %d", ErrCriterionNotFound, id)
	}
	if err := ValidateWeight(weight); err != nil {
		return s, ComputeAttributionTotal(s.AttributionCriteria), err
	}
	out := s.Clone()
	out.AttributionCriteria[idx].Weight = weight
	return out, ComputeAttributionTotal(out.AttributionCriteria), nil
}

// ComputeAttributionTotal считает сумму весов; корректна только ровно 100
func ComputeAttributionTotal(criteria []AttributionCriterion) AttributionTotal {
	total := 0
	for _, c := range criteria {
		total += c.Weight
	}
	return AttributionTotal{Total: total, Valid: total == maxWeight}
}

// ToggleCompany синхронно меняет выбор в обоих списках и возвращает число выбранных
func ToggleCompany(s State, id string, selected bool) (State, int, error) {
	matchedIdx := indexOfCompany(s.MatchedCompanies, id)
	selectedIdx := indexOfCompany(s.SelectedCompanies, id)
	if matchedIdx < 0 && selectedIdx < 0 {
		return s, SelectedCount(s), fmt.Errorf("%w: %s", ErrCompanyNotFound, id)
	}
	out := s.Clone()
	if matchedIdx >= 0 {
		out.MatchedCompanies[matchedIdx].Selected = selected
	}
	if selectedIdx >= 0 {
		out.SelectedCompanies[selectedIdx].Selected = selected
	}
	return out, SelectedCount(out), nil
}

// SelectedCount число выбранных компаний в selectedCompanies
func SelectedCount(s State) int {
	n := 0
	for _, c := range s.SelectedCompanies {
		if c.Selected {
			n++
		}
	}
	return n
}

// SelectedCompanies возвращает выбранные компании
func SelectedCompanies(s State) []MatchedCompany {
	out := make([]MatchedCompany, 0, len(s.SelectedCompanies))
	for _, c := range s.SelectedCompanies {
		if c.Selected {
			out = append(out, c.clone())
		}
	}
	return out
}

// AddManualCompany добавляет компанию вручную в оба списка
func AddManualCompany(s State, in ManualCompanyInput, now time.Time) (State, MatchedCompany, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return s, MatchedCompany{}, ErrCompanyNameRequired
	}

	company := MatchedCompany{
		ID:             uniqueManualID(s, now),
		Name:           name,
		Domain:         orNotSpecified(in.Domain),
		Location:       orNotSpecified(in.Location),
		CA:             orNotSpecified(in.CA),
		Employees:      orNotSpecified(in.Employees),
		Certifications: knownCertifications(in.Certifications),
		Score:          100,
		Selected:       true,
		MatchDetails:   MatchDetails{{Criterion: ManualMatchDetail, Score: 100}},
	}

	out := s.Clone()
	out.MatchedCompanies = append(out.MatchedCompanies, company.clone())
	out.SelectedCompanies = append(out.SelectedCompanies, company.clone())
	return out, company, nil
}

// FindCompany ищет компанию среди подобранных
func FindCompany(s State, id string) (MatchedCompany, error) {
	idx := indexOfCompany(s.MatchedCompanies, id)
	if idx < 0 {
		return MatchedCompany{}, fmt.Errorf("%w: %s", ErrCompanyNotFound, id)
	}
	return s.MatchedCompanies[idx].clone(), nil
}

// UpdateProjectData обновляет поле title или description
func UpdateProjectData(s State, field, value string) (State, error) {
	out := s.Clone()
	switch field {
	case "title":
		out.ProjectData.Title = value
	case "description":
		out.ProjectData.Description = value
	default:
		return s, fmt.Errorf("%w: %q", ErrUnknownProjectField, field)
	}
	return out, nil
}

// ApplyGeneratedDocuments сохраняет результат генерации
func ApplyGeneratedDocuments(s State, docs []GeneratedDocument) State {
	out := EndProcessing(s)
	if len(docs) > 0 {
		out.GeneratedDocuments = append([]GeneratedDocument(nil), docs...)
	}
	return out
}

// uniqueManualID строит manual_<millis>; при совпадении увеличивает значение
func uniqueManualID(s State, now time.Time) string {
	millis := now.UnixMilli()
	for {
		id := ManualCompanyPrefix + strconv.FormatInt(millis, 10)
		if indexOfCompany(s.MatchedCompanies, id) < 0 && indexOfCompany(s.SelectedCompanies, id) < 0 {
			return id
		}
		millis++
	}
}

func orNotSpecified(v string) string {
	if v = strings.TrimSpace(v); v == "" {
		return NotSpecified
	}
	return v
}

// knownCertifications оставляет только сертификаты формы, в порядке формы
func knownCertifications(in []string) []string {
	picked := make(map[string]bool, len(in))
	for _, c := range in {
		picked[strings.TrimSpace(c)] = true
	}
	out := []string{}
	for _, c := range ManualCertifications {
		if picked[c] {
			out = append(out, c)
		}
	}
	return out
}

func indexOfSelection(list []SelectionCriterion, id int) int {
	for i, c := range list {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func indexOfAttribution(list []AttributionCriterion, id int) int {
	for i, c := range list {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func indexOfCompany(list []MatchedCompany, id string) int {
	for i, c := range list {
		if c.ID == id {
			return i
		}
	}
	return -1
}
