package directory

import (
	"fmt"
	"regexp"
	"strings"
)

// Contact контактные данные компании
type Contact struct {
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Lot лот рынка, на котором работала компания
type Lot struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// CompanyRecord компания справочника
type CompanyRecord struct {
	ID             string   `json:"id,omitempty"`
	Name           string   `json:"name"`
	Domain         string   `json:"domain"`
	Location       string   `json:"location"`
	Certifications []string `json:"certifications"`
	CA             string   `json:"ca"`
	Employees      string   `json:"employees"`
	Contact        *Contact `json:"contact,omitempty"`
	Experience     string   `json:"experience,omitempty"`
	LotsMarches    []Lot    `json:"lots_marches,omitempty"`
}

// Email возвращает адрес или пустую строку
func (c CompanyRecord) Email() string {
	if c.Contact == nil {
		return ""
	}
	return c.Contact.Email
}

// Phone возвращает телефон или пустую строку
func (c CompanyRecord) Phone() string {
	if c.Contact == nil {
		return ""
	}
	return c.Contact.Phone
}

// HasCertification проверяет точное совпадение сертификата
func (c CompanyRecord) HasCertification(cert string) bool {
	for _, have := range c.Certifications {
		if have == cert {
			return true
		}
	}
	return false
}

// FormCertifications сертификаты формы редактирования компании
var FormCertifications = []string{"MASE", "ISO 9001", "ISO 14001", "QUALIBAT"}

var domainClasses = map[string]string{
	"Électricité": "domain-electricity",
	"Mécanique":   "domain-mechanical",
	"Hydraulique": "domain-hydraulic",
	"Bâtiment":    "domain-construction",
	"Maintenance": "domain-maintenance",
}

// DomainClass CSS класс бейджа домена
func DomainClass(domain string) string {
	if class, ok := domainClasses[domain]; ok {
		return class
	}
	return "domain-other"
}

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^(0|\+33)[1-9]([-. ]?[0-9]{2}){4}$`)
)

// ValidEmail проверяет формат адреса электронной почты
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidPhone проверяет формат французского номера
func ValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// CompanyInput данные формы добавления или изменения компании
type CompanyInput struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Domain         string   `json:"domain"`
	Location       string   `json:"location"`
	CA             string   `json:"ca"`
	Employees      string   `json:"employees"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone"`
	Experience     string   `json:"experience"`
	Certifications []string `json:"certifications"`
}

// Validate проверяет обязательные поля и формат контактов
func (in CompanyInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrNameRequired
	}
	if email := strings.TrimSpace(in.Email); email != "" && !ValidEmail(email) {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}
	if phone := strings.TrimSpace(in.Phone); phone != "" && !ValidPhone(phone) {
		return fmt.Errorf("%w: %q", ErrInvalidPhone, phone)
	}
	return nil
}

// IsUpdate true, если форма редактирует существующую компанию
func (in CompanyInput) IsUpdate() bool {
	return strings.TrimSpace(in.ID) != ""
}

// Record собирает запись для отправки в хранилище.
// Контакт передается только если указан email или телефон.
func (in CompanyInput) Record() CompanyRecord {
	record := CompanyRecord{
		ID:             strings.TrimSpace(in.ID),
		Name:           strings.TrimSpace(in.Name),
		Domain:         strings.TrimSpace(in.Domain),
		Location:       strings.TrimSpace(in.Location),
		CA:             strings.TrimSpace(in.CA),
		Employees:      strings.TrimSpace(in.Employees),
		Experience:     strings.TrimSpace(in.Experience),
		Certifications: []string{},
	}
	for _, cert := range in.Certifications {
		if cert = strings.TrimSpace(cert); cert != "" && !record.HasCertification(cert) {
			record.Certifications = append(record.Certifications, cert)
		}
	}

	email := strings.TrimSpace(in.Email)
	phone := strings.TrimSpace(in.Phone)
	if email != "" || phone != "" {
		record.Contact = &Contact{Email: email, Phone: phone}
	}
	return record
}

// InputFrom заполняет форму редактирования данными компании
func InputFrom(c CompanyRecord) CompanyInput {
	return CompanyInput{
		ID:             c.ID,
		Name:           c.Name,
		Domain:         c.Domain,
		Location:       c.Location,
		CA:             c.CA,
		Employees:      c.Employees,
		Email:          c.Email(),
		Phone:          c.Phone(),
		Experience:     c.Experience,
		Certifications: append([]string(nil), c.Certifications...),
	}
}
