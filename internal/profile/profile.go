package profile

import "strings"

const (
	TypeStartup = "startup"
	TypeVC      = "vc"
)

// Profile is the lightweight record the matchmaking paths operate on,
// distinct from the full directory listing schema.
type Profile struct {
	ID          string   `json:"id,omitempty"`
	Type        string   `json:"type"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Sectors     []string `json:"sectors,omitempty"`
	Regions     []string `json:"regions,omitempty"`
	Stages      []string `json:"stages,omitempty"`
	Contact     string   `json:"contact,omitempty"`
	Website     string   `json:"website,omitempty"`
}

type Profiles struct {
	Items []*Profile
}

func (p *Profiles) Len() int {
	return len(p.Items)
}

func (p *Profiles) FindByID(id string) *Profile {
	for _, item := range p.Items {
		if item.ID == id {
			return item
		}
	}
	return nil
}

// FindByName resolves a name back to a stored profile, case-insensitively.
// Exact matches win over substring matches; within each class the first
// profile in stored order wins. The substring check runs both ways since
// model replies routinely shorten or pad names ("Acme" vs "Acme Capital").
func (p *Profiles) FindByName(name string) *Profile {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil
	}

	for _, item := range p.Items {
		if strings.ToLower(item.Name) == name {
			return item
		}
	}

	for _, item := range p.Items {
		stored := strings.ToLower(item.Name)
		if strings.Contains(stored, name) || strings.Contains(name, stored) {
			return item
		}
	}

	return nil
}

// OppositeType returns the candidate side for a requester: startups are
// matched against investors and vice versa.
func OppositeType(requesterType string) string {
	if strings.EqualFold(strings.TrimSpace(requesterType), TypeVC) {
		return TypeStartup
	}
	return TypeVC
}
