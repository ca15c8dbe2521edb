package catalog

// Country is one supported country with its display metadata.
type Country struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// Domain is one supported technology domain. Pages are the canonical
// encyclopedia page variants the resolver expands a domain into; Aliases are
// alternate spellings (including non-English ones) that map to this domain
// after normalization.
type Domain struct {
	Key         string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Aliases     []string `json:"aliases"`
	Pages       []string `json:"pages"`
}

// Catalog is the immutable set of supported countries and domains,
// constructed once at startup and passed explicitly to its consumers.
type Catalog struct {
	countries []Country
	domains   []Domain
	byAlias   map[string]int // normalized alias -> index into domains
}

// New builds the default catalog.
func New() *Catalog {
	c := &Catalog{
		countries: defaultCountries,
		domains:   defaultDomains,
		byAlias:   make(map[string]int),
	}
	for i, d := range c.domains {
		c.byAlias[d.Key] = i
		for _, a := range d.Aliases {
			c.byAlias[a] = i
		}
	}
	return c
}

// Countries returns the supported countries in catalog order.
func (c *Catalog) Countries() []Country {
	out := make([]Country, len(c.countries))
	copy(out, c.countries)
	return out
}

// Domains returns the supported domains in catalog order.
func (c *Catalog) Domains() []Domain {
	out := make([]Domain, len(c.domains))
	copy(out, c.domains)
	return out
}

// LookupDomain resolves an already-normalized domain key or alias.
func (c *Catalog) LookupDomain(normalized string) (Domain, bool) {
	i, ok := c.byAlias[normalized]
	if !ok {
		return Domain{}, false
	}
	return c.domains[i], true
}

var defaultCountries = []Country{
	{Name: "United States", Code: "US"},
	{Name: "China", Code: "CN"},
	{Name: "India", Code: "IN"},
	{Name: "United Kingdom", Code: "GB"},
	{Name: "Germany", Code: "DE"},
	{Name: "Japan", Code: "JP"},
	{Name: "South Korea", Code: "KR"},
	{Name: "France", Code: "FR"},
	{Name: "Canada", Code: "CA"},
	{Name: "Israel", Code: "IL"},
	{Name: "Singapore", Code: "SG"},
	{Name: "Australia", Code: "AU"},
	{Name: "Brazil", Code: "BR"},
	{Name: "Russia", Code: "RU"},
	{Name: "Netherlands", Code: "NL"},
}

var defaultDomains = []Domain{
	{
		Key:         "artificial intelligence",
		Name:        "Artificial Intelligence",
		Description: "Machine learning, neural networks, and AI applications",
		Aliases: []string{
			"ai", "machine learning", "deep learning",
			"intelligence artificielle", "künstliche intelligenz", "人工智能",
		},
		Pages: []string{"Artificial_intelligence", "Machine_learning", "Deep_learning"},
	},
	{
		Key:         "renewable energy",
		Name:        "Renewable Energy",
		Description: "Solar, wind, hydro, and clean energy technologies",
		Aliases:     []string{"clean energy", "solar power", "wind power"},
		Pages:       []string{"Renewable_energy", "Solar_power", "Wind_power"},
	},
	{
		Key:         "robotics",
		Name:        "Robotics",
		Description: "Industrial robots, automation, and robotic systems",
		Aliases:     []string{"robots", "automation"},
		Pages:       []string{"Robotics", "Robot", "Automation"},
	},
	{
		Key:         "biotechnology",
		Name:        "Biotechnology",
		Description: "Genetic engineering, pharmaceuticals, and biotech research",
		Aliases:     []string{"biotech", "genetic engineering"},
		Pages:       []string{"Biotechnology", "Genetic_engineering"},
	},
	{
		Key:         "quantum computing",
		Name:        "Quantum Computing",
		Description: "Quantum processors, quantum algorithms, and applications",
		Aliases:     []string{"quantum", "quantum computer"},
		Pages:       []string{"Quantum_computing", "Quantum_computer"},
	},
	{
		Key:         "space technology",
		Name:        "Space Technology",
		Description: "Satellites, rockets, space exploration, and applications",
		Aliases:     []string{"space", "space exploration", "satellites"},
		Pages:       []string{"Space_technology", "Space_exploration", "Satellite"},
	},
	{
		Key:         "5g",
		Name:        "5G and Telecommunications",
		Description: "Next-gen networks and connectivity infrastructure",
		Aliases:     []string{"telecommunications", "telecom", "mobile networks"},
		Pages:       []string{"5G", "Telecommunications", "Mobile_network"},
	},
	{
		Key:         "cybersecurity",
		Name:        "Cybersecurity",
		Description: "Information security, threat detection, and protection systems",
		Aliases:     []string{"cyber security", "information security", "computer security"},
		Pages:       []string{"Computer_security", "Information_security"},
	},
	{
		Key:         "blockchain",
		Name:        "Blockchain",
		Description: "Distributed ledgers, cryptocurrencies, and blockchain applications",
		Aliases:     []string{"cryptocurrency", "distributed ledger"},
		Pages:       []string{"Blockchain", "Cryptocurrency", "Distributed_ledger"},
	},
	{
		Key:         "nanotechnology",
		Name:        "Nanotechnology",
		Description: "Nanomaterials, nanoelectronics, and nanoscale engineering",
		Aliases:     []string{"nanotech", "nanoscience"},
		Pages:       []string{"Nanotechnology", "Nanoscience"},
	},
}
