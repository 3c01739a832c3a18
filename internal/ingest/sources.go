package ingest

// Source is one policy document to fetch. The list is fixed; adding coverage
// for a new country means adding an entry here and re-running ingest.
type Source struct {
	Country  string
	ISOCode  string
	Name     string
	URL      string
	Category string
}

// Sources is the curated list of policy documents tracked by the index.
var Sources = []Source{
	{
		Country:  "EU",
		ISOCode:  "EU",
		Name:     "EU AI Act (consolidated text)",
		URL:      "https://eur-lex.europa.eu/legal-content/EN/TXT/?uri=CELEX:32024R1689",
		Category: "ai_act",
	},
	{
		Country:  "India",
		ISOCode:  "IN",
		Name:     "Digital Personal Data Protection Act 2023",
		URL:      "https://www.meity.gov.in/data-protection-framework",
		Category: "data_protection",
	},
}
