package listing

import "strings"

// Startup is a directory row describing a startup. Rows are created by the
// public contribution form or by the external scraping pipeline and are
// read-only afterwards.
type Startup struct {
	ID                   string `json:"id,omitempty"`
	Name                 string `json:"name"`
	Sector               string `json:"sector"` // comma-joined multi-value
	Location             string `json:"location,omitempty"`
	FoundedYear          int    `json:"founded_year,omitempty"`
	WhatTheyDo           string `json:"what_they_do,omitempty"`
	ProblemSolved        string `json:"problem_solved,omitempty"`
	Beneficiaries        string `json:"beneficiaries,omitempty"`
	RevenueModel         string `json:"revenue_model,omitempty"`
	Impact               string `json:"impact,omitempty"`
	Awards               string `json:"awards,omitempty"`
	Grants               string `json:"grants,omitempty"`
	InstitutionalSupport string `json:"institutional_support,omitempty"`
	Accredited           bool   `json:"accredited,omitempty"`
	Website              string `json:"website,omitempty"`
	Contact              string `json:"contact,omitempty"`
	News                 string `json:"news,omitempty"`
}

// Investor is a directory row describing a VC fund or grant program. Rows are
// populated only by the scraping pipeline, never by the public form.
type Investor struct {
	ID                   string `json:"id,omitempty"`
	Name                 string `json:"name"`
	Sector               string `json:"sector"`
	Description          string `json:"description,omitempty"`
	Website              string `json:"website,omitempty"`
	Contact              string `json:"contact,omitempty"`
	SocialEnterprise     bool   `json:"social_enterprise,omitempty"`
	ProgramParticipation string `json:"program_participation,omitempty"`
	News                 string `json:"news,omitempty"`
}

type Startups struct {
	Items []*Startup
}

type Investors struct {
	Items []*Investor
}

func (s *Startups) Len() int  { return len(s.Items) }
func (i *Investors) Len() int { return len(i.Items) }

func (s *Startups) FindByID(id string) *Startup {
	for _, item := range s.Items {
		if item.ID == id {
			return item
		}
	}
	return nil
}

func (i *Investors) FindByID(id string) *Investor {
	for _, item := range i.Items {
		if item.ID == id {
			return item
		}
	}
	return nil
}

// SearchText concatenates the fields a free-text directory query runs over.
func (s *Startup) SearchText() string {
	return strings.Join([]string{
		s.Name,
		s.Sector,
		s.Location,
		s.WhatTheyDo,
		s.ProblemSolved,
		s.Beneficiaries,
		s.RevenueModel,
		s.Impact,
	}, " ")
}

// SearchText concatenates the fields a free-text directory query runs over.
func (i *Investor) SearchText() string {
	return strings.Join([]string{
		i.Name,
		i.Sector,
		i.Description,
		i.ProgramParticipation,
		i.News,
	}, " ")
}

// Sectors splits the comma-joined sector field into trimmed tokens.
func splitSectors(field string) []string {
	parts := strings.Split(field, ",")
	sectors := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			sectors = append(sectors, p)
		}
	}
	return sectors
}

func (s *Startup) Sectors() []string  { return splitSectors(s.Sector) }
func (i *Investor) Sectors() []string { return splitSectors(i.Sector) }
