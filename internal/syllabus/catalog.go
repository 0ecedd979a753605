package syllabus

// catalog is the built-in topic registry, keyed by normalized subject.
// Seed data for additional subjects lives outside this service and is
// merged in at deploy time; this table carries the topics the generator
// ships with.
var catalog = map[string][]Topic{
	"biology": {
		{ID: "bio-cell-biology", Name: "Cell Biology", Subject: "biology",
			Subtopics: []string{"cell structure", "cell division", "transport in cells"}},
		{ID: "bio-organisation", Name: "Organisation", Subject: "biology",
			Subtopics: []string{"principles of organisation", "the heart and blood", "plant tissues"}},
		{ID: "bio-infection", Name: "Infection and Response", Subject: "biology",
			Subtopics: []string{"communicable diseases", "human defence systems", "vaccination"}},
		{ID: "bio-bioenergetics", Name: "Bioenergetics", Subject: "biology",
			Subtopics: []string{"photosynthesis", "respiration", "metabolism"}},
	},
	"chemistry": {
		{ID: "chem-atomic-structure", Name: "Atomic Structure and the Periodic Table", Subject: "chemistry",
			Subtopics: []string{"atoms and isotopes", "electronic structure", "group properties"}},
		{ID: "chem-bonding", Name: "Bonding, Structure and Properties", Subject: "chemistry",
			Subtopics: []string{"ionic bonding", "covalent bonding", "states of matter"}},
		{ID: "chem-quantitative", Name: "Quantitative Chemistry", Subject: "chemistry",
			Subtopics: []string{"moles", "concentration", "percentage yield"}},
	},
	"physics": {
		{ID: "phys-energy", Name: "Energy", Subject: "physics",
			Subtopics: []string{"energy stores", "work and power", "efficiency"}},
		{ID: "phys-electricity", Name: "Electricity", Subject: "physics",
			Subtopics: []string{"circuits", "resistance", "mains electricity"}},
		{ID: "phys-forces", Name: "Forces", Subject: "physics",
			Subtopics: []string{"resultant forces", "newton's laws", "momentum"}},
	},
	"mathematics": {
		{ID: "math-algebra", Name: "Algebra", Subject: "mathematics",
			Subtopics: []string{"solving equations", "quadratics", "simultaneous equations", "sequences"}},
		{ID: "math-geometry", Name: "Geometry and Measures", Subject: "mathematics",
			Subtopics: []string{"angles", "circle theorems", "trigonometry", "vectors"}},
		{ID: "math-statistics", Name: "Statistics", Subject: "mathematics",
			Subtopics: []string{"averages", "probability", "sampling"}},
		{ID: "math-calculus", Name: "Calculus", Subject: "mathematics",
			Qualifications: []string{"a-level"},
			Subtopics:      []string{"differentiation", "integration", "differential equations"}},
	},
	"english-literature": {
		{ID: "lit-macbeth", Name: "Macbeth", Subject: "english-literature",
			Subtopics: []string{"ambition", "guilt", "the supernatural", "kingship"}},
		{ID: "lit-christmas-carol", Name: "A Christmas Carol", Subject: "english-literature",
			Subtopics: []string{"redemption", "poverty", "family", "social responsibility"}},
		{ID: "lit-inspector-calls", Name: "An Inspector Calls", Subject: "english-literature",
			Subtopics: []string{"responsibility", "class", "generational conflict"}},
	},
	"history": {
		{ID: "hist-weimar-nazi", Name: "Weimar and Nazi Germany", Subject: "history",
			Subtopics: []string{"the weimar republic", "hitler's rise to power", "life in nazi germany"}},
		{ID: "hist-cold-war", Name: "The Cold War", Subject: "history",
			Subtopics: []string{"origins of the cold war", "the berlin crisis", "the cuban missile crisis"}},
		{ID: "hist-medicine", Name: "Medicine Through Time", Subject: "history",
			Subtopics: []string{"medieval medicine", "the germ theory", "modern treatments"}},
	},
	"psychology": {
		{ID: "psy-memory", Name: "Memory", Subject: "psychology",
			Subtopics: []string{"the multi-store model", "working memory", "eyewitness testimony"}},
		{ID: "psy-attachment", Name: "Attachment", Subject: "psychology",
			Subtopics: []string{"caregiver-infant interactions", "ainsworth's strange situation", "bowlby's theory"}},
		{ID: "psy-social", Name: "Social Influence", Subject: "psychology",
			Subtopics: []string{"conformity", "obedience", "minority influence"}},
	},
	"economics": {
		{ID: "econ-markets", Name: "Markets and Market Failure", Subject: "economics",
			Subtopics: []string{"supply and demand", "elasticity", "externalities"}},
		{ID: "econ-macro", Name: "The National Economy", Subject: "economics",
			Subtopics: []string{"economic growth", "inflation", "fiscal policy"}},
	},
	"geography": {
		{ID: "geo-hazards", Name: "Natural Hazards", Subject: "geography",
			Subtopics: []string{"tectonic hazards", "tropical storms", "uk weather hazards"}},
		{ID: "geo-urban", Name: "Urban Issues and Challenges", Subject: "geography",
			Subtopics: []string{"urbanisation", "megacities", "sustainable urban living"}},
	},
	"business": {
		{ID: "bus-enterprise", Name: "Enterprise and Entrepreneurship", Subject: "business",
			Subtopics: []string{"risk and reward", "business opportunities", "business aims"}},
		{ID: "bus-finance", Name: "Business Finance", Subject: "business",
			Subtopics: []string{"sources of finance", "cash flow", "break-even analysis"}},
	},
}
