package profile

// Demo returns the built-in candidate set used by the manual matcher. The
// manual path is a pure in-memory demonstration and does not hit the store.
func Demo(requesterType string) *Profiles {
	side := OppositeType(requesterType)

	all := &Profiles{Items: []*Profile{
		{
			ID:          "demo-vc-1",
			Type:        TypeVC,
			Name:        "Acme Capital",
			Description: "Early-stage fund backing fintech and healthtech founders across East Africa.",
			Sectors:     []string{"Fintech", "Healthcare"},
			Regions:     []string{"East Africa", "Rwanda"},
			Stages:      []string{"Pre-seed", "Seed"},
			Contact:     "deals@acmecapital.example",
			Website:     "https://acmecapital.example",
		},
		{
			ID:          "demo-vc-2",
			Type:        TypeVC,
			Name:        "GreenRoots Ventures",
			Description: "Impact investor focused on agriculture and climate resilience.",
			Sectors:     []string{"Agriculture", "Climate"},
			Regions:     []string{"Rwanda", "Kenya"},
			Stages:      []string{"Seed", "Series A"},
			Contact:     "hello@greenroots.example",
			Website:     "https://greenroots.example",
		},
		{
			ID:          "demo-vc-3",
			Type:        TypeVC,
			Name:        "Savanna Grants Program",
			Description: "Non-dilutive grants for social enterprises and accredited startups.",
			Sectors:     []string{"Healthcare", "Education", "Agriculture"},
			Regions:     []string{"East Africa"},
			Stages:      []string{"Pre-seed", "Seed", "Growth"},
			Contact:     "apply@savannagrants.example",
			Website:     "https://savannagrants.example",
		},
		{
			ID:          "demo-startup-1",
			Type:        TypeStartup,
			Name:        "MediScan",
			Description: "AI-assisted diagnostics for rural clinics.",
			Sectors:     []string{"Healthcare", "Technology"},
			Regions:     []string{"Rwanda"},
			Stages:      []string{"Seed"},
			Contact:     "team@mediscan.example",
			Website:     "https://mediscan.example",
		},
		{
			ID:          "demo-startup-2",
			Type:        TypeStartup,
			Name:        "AgroLink",
			Description: "Marketplace connecting smallholder farmers to urban buyers.",
			Sectors:     []string{"Agriculture"},
			Regions:     []string{"Rwanda", "East Africa"},
			Stages:      []string{"Pre-seed"},
			Contact:     "founders@agrolink.example",
			Website:     "https://agrolink.example",
		},
		{
			ID:          "demo-startup-3",
			Type:        TypeStartup,
			Name:        "PayLeaf",
			Description: "Mobile-first payments for cash-heavy merchants.",
			Sectors:     []string{"Fintech"},
			Regions:     []string{"Rwanda", "Kenya"},
			Stages:      []string{"Seed", "Series A"},
			Contact:     "info@payleaf.example",
			Website:     "https://payleaf.example",
		},
	}}

	out := &Profiles{}
	for _, item := range all.Items {
		if item.Type == side {
			out.Items = append(out.Items, item)
		}
	}
	return out
}
