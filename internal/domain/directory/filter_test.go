package directory

import (
	"fmt"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDomains = []string{"Électricité", "Mécanique", "Hydraulique", "Bâtiment", "Maintenance"}

// fakeCompanies генерирует справочник заданного размера
func fakeCompanies(n int) []CompanyRecord {
	gofakeit.Seed(42)
	out := make([]CompanyRecord, n)
	for i := range out {
		var certs []string
		for _, c := range FormCertifications {
			if gofakeit.Bool() {
				certs = append(certs, c)
			}
		}
		out[i] = CompanyRecord{
			ID:             fmt.Sprintf("ENT_%03d", i+1),
			Name:           gofakeit.Company(),
			Domain:         gofakeit.RandomString(testDomains),
			Location:       gofakeit.City(),
			Certifications: certs,
			CA:             fmt.Sprintf("%d M€", gofakeit.Number(1, 500)),
			Employees:      fmt.Sprintf("%d", gofakeit.Number(5, 2000)),
			Contact:        &Contact{Email: gofakeit.Email()},
		}
	}
	return out
}

func sampleCompanies() []CompanyRecord {
	return []CompanyRecord{
		{ID: "ENT_001", Name: "Électro Rhône", Domain: "Électricité", Location: "Lyon", Certifications: []string{"MASE", "ISO 9001"}},
		{ID: "ENT_002", Name: "Méca Ouest", Domain: "Mécanique", Location: "Nantes", Certifications: []string{"ISO 14001"}},
		{ID: "ENT_003", Name: "Hydro Services", Domain: "Hydraulique", Location: "Lyon", Certifications: []string{"MASE"}},
		{ID: "ENT_004", Name: "Bâti Nord", Domain: "Bâtiment", Location: "Lille"},
	}
}

func ids(list []CompanyRecord) []string {
	out := make([]string, len(list))
	for i, c := range list {
		out[i] = c.ID
	}
	return out
}

func TestFilterApply(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{name: "empty filter is identity", filter: Filter{}, want: []string{"ENT_001", "ENT_002", "ENT_003", "ENT_004"}},
		{name: "search by location ignores case", filter: Filter{Search: "LYON"}, want: []string{"ENT_001", "ENT_003"}},
		{name: "search by name with accents", filter: Filter{Search: "électro"}, want: []string{"ENT_001"}},
		{name: "search by domain", filter: Filter{Search: "hydraul"}, want: []string{"ENT_003"}},
		{name: "exact domain", filter: Filter{Domain: "Mécanique"}, want: []string{"ENT_002"}},
		{name: "domain is not a substring match", filter: Filter{Domain: "Méca"}, want: []string{}},
		{name: "certification membership", filter: Filter{Certification: "MASE"}, want: []string{"ENT_001", "ENT_003"}},
		{name: "all three combined", filter: Filter{Search: "lyon", Domain: "Hydraulique", Certification: "MASE"}, want: []string{"ENT_003"}},
		{name: "no match", filter: Filter{Search: "Marseille"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(tt.filter.Apply(sampleCompanies())))
		})
	}
}

func TestFilterIsConjunction(t *testing.T) {
	companies := fakeCompanies(200)
	filters := []Filter{
		{Search: "a"},
		{Domain: "Maintenance"},
		{Certification: "QUALIBAT"},
		{Search: "e", Domain: "Bâtiment", Certification: "MASE"},
	}

	for _, f := range filters {
		got := f.Apply(companies)
		var want []CompanyRecord
		for _, c := range companies {
			term := strings.ToLower(f.Search)
			text := term == "" ||
				strings.Contains(strings.ToLower(c.Name), term) ||
				strings.Contains(strings.ToLower(c.Location), term) ||
				strings.Contains(strings.ToLower(c.Domain), term)
			domain := f.Domain == "" || c.Domain == f.Domain
			cert := f.Certification == "" || c.HasCertification(f.Certification)
			if text && domain && cert {
				want = append(want, c)
			}
		}
		assert.Equal(t, ids(want), ids(got), "filter %+v", f)
	}
}

func TestFilterDoesNotMutateSource(t *testing.T) {
	companies := sampleCompanies()
	_ = Filter{Domain: "Bâtiment"}.Apply(companies)
	assert.Len(t, companies, 4)
	assert.Equal(t, "ENT_001", companies[0].ID)
}

func TestPaginate(t *testing.T) {
	companies := fakeCompanies(45)

	tests := []struct {
		page       int
		wantNumber int
		wantStart  int
		wantEnd    int
		wantLen    int
	}{
		{page: 1, wantNumber: 1, wantStart: 1, wantEnd: 20, wantLen: 20},
		{page: 2, wantNumber: 2, wantStart: 21, wantEnd: 40, wantLen: 20},
		{page: 3, wantNumber: 3, wantStart: 41, wantEnd: 45, wantLen: 5},
		{page: 9, wantNumber: 3, wantStart: 41, wantEnd: 45, wantLen: 5},
		{page: 0, wantNumber: 1, wantStart: 1, wantEnd: 20, wantLen: 20},
		{page: -3, wantNumber: 1, wantStart: 1, wantEnd: 20, wantLen: 20},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("page %d", tt.page), func(t *testing.T) {
			p := Paginate(companies, tt.page, 20)
			assert.Equal(t, tt.wantNumber, p.Number)
			assert.Equal(t, tt.wantStart, p.Start)
			assert.Equal(t, tt.wantEnd, p.End)
			assert.Len(t, p.Items, tt.wantLen)
			assert.Equal(t, 3, p.TotalPages)
			assert.Equal(t, 45, p.Total)
			assert.Equal(t, companies[p.Start-1].ID, p.Items[0].ID)
		})
	}
}

func TestPaginateEmpty(t *testing.T) {
	p := Paginate(nil, 4, 20)
	assert.Equal(t, 1, p.Number)
	assert.Equal(t, 1, p.TotalPages)
	assert.Equal(t, 0, p.Start)
	assert.Equal(t, 0, p.End)
	assert.Empty(t, p.Items)
	assert.False(t, p.HasPrev())
	assert.False(t, p.HasNext())
}

func TestDistinctOptions(t *testing.T) {
	companies := sampleCompanies()
	companies = append(companies, CompanyRecord{ID: "ENT_005", Domain: "Électricité", Certifications: []string{"QUALIBAT"}})

	domains := DistinctDomains(companies)
	require.Len(t, domains, 4)
	assert.Equal(t, []string{"Bâtiment", "Électricité", "Hydraulique", "Mécanique"}, domains)

	assert.Equal(t, []string{"ISO 14001", "ISO 9001", "MASE", "QUALIBAT"}, DistinctCertifications(companies))
}

func TestDomainClass(t *testing.T) {
	assert.Equal(t, "domain-electricity", DomainClass("Électricité"))
	assert.Equal(t, "domain-construction", DomainClass("Bâtiment"))
	assert.Equal(t, "domain-other", DomainClass("Nettoyage"))
	assert.Equal(t, "domain-other", DomainClass(""))
}
