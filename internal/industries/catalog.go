package industries

import (
	"errors"
	"sort"
	"strings"
)

// Industry holds the vocabulary used to build prompts for one market segment
type Industry struct {
	Name          string
	Terms         []string
	Regions       []string
	BusinessTypes []string
	PainPoints    []string
	Actions       []string
	Needs         []string
	UseCases      []string
	Features      []string
	Capabilities  []string
	Benefits      []string
}

// ErrUnsupported is returned when a non-custom industry is not in the catalog
var ErrUnsupported = errors.New("industry not supported")

// Lookup returns the built-in configuration for an industry by exact name
func Lookup(name string) (Industry, bool) {
	ind, ok := catalog[name]
	return ind, ok
}

// Names lists the built-in industries in sorted order
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Synthesize builds a generic configuration for an industry outside the
// catalog. The location, when given, leads the regions list.
func Synthesize(name, location string) Industry {
	regions := []string{"globally", "internationally", "in the market"}
	if location != "" {
		regions = append([]string{location}, regions...)
	}

	return Industry{
		Name: name,
		Terms: []string{
			strings.ToLower(name), name, name + " solutions", name + " services",
		},
		Regions: regions,
		BusinessTypes: []string{
			"startup", "enterprise", "small business", "individual",
			"corporation", "SME", "organization", "company",
		},
		PainPoints: []string{
			"high costs", "inefficiency", "poor service quality",
			"limited options", "complex processes", "lack of transparency",
			"scalability issues", "integration challenges",
		},
		Actions: []string{
			"find solutions", "compare options", "get services", "improve processes",
			"reduce costs", "increase efficiency", "solve problems", "get started",
		},
		Needs: []string{
			"better solutions", "cost optimization", "process improvement",
			"quality service", "reliable providers", "trusted partners",
			"innovative approaches", "competitive advantage",
		},
		UseCases: []string{
			"business operations", "service delivery", "customer needs",
			"market requirements", "industry challenges", "growth objectives",
			"efficiency goals", "competitive positioning",
		},
		Features: []string{
			"quality service", "competitive pricing", "reliability",
			"customer support", "innovation", "flexibility",
			"scalability", "expertise",
		},
		Capabilities: []string{
			"service delivery", "problem solving", "customer satisfaction",
			"operational excellence", "market expertise", "industry knowledge",
			"proven track record", "professional service",
		},
		Benefits: []string{
			"cost savings", "better outcomes", "improved efficiency",
			"competitive advantage", "customer satisfaction", "growth potential",
			"market leadership", "operational excellence",
		},
	}
}

var catalog = map[string]Industry{
	"FinTech": {
		Name: "FinTech",
		Terms: []string{
			"fintech", "financial technology", "digital banking", "mobile payments",
			"cryptocurrency", "blockchain", "digital wallet", "peer-to-peer lending",
			"robo-advisory", "insurtech", "regtech", "neobank",
		},
		Regions: []string{
			"India", "Asia", "globally", "internationally", "domestically",
			"in emerging markets", "in developed markets",
		},
		BusinessTypes: []string{
			"startup", "enterprise", "small business", "individual",
			"corporation", "SME", "freelancer", "family business",
		},
		PainPoints: []string{
			"high transaction fees", "slow transfers", "poor customer service",
			"limited access to credit", "complex onboarding", "security concerns",
			"regulatory compliance", "lack of transparency",
		},
		Actions: []string{
			"transfer money", "invest funds", "get a loan", "open an account",
			"make payments", "manage finances", "build credit", "save money",
		},
		Needs: []string{
			"financial inclusion", "cost reduction", "process automation",
			"risk management", "compliance support", "customer acquisition",
			"data analytics", "mobile-first solutions",
		},
		UseCases: []string{
			"international remittances", "business banking", "personal finance",
			"investment management", "payment processing", "credit scoring",
			"fraud detection", "regulatory reporting",
		},
		Features: []string{
			"real-time payments", "multi-currency support", "AI-powered insights",
			"mobile app", "API integration", "security features", "analytics dashboard",
			"customer support", "compliance tools",
		},
		Capabilities: []string{
			"fraud detection", "risk assessment", "automated underwriting",
			"real-time processing", "cross-border payments", "digital identity",
			"smart contracts", "predictive analytics",
		},
		Benefits: []string{
			"cost savings", "faster processing", "better security", "improved accessibility",
			"enhanced user experience", "regulatory compliance", "scalability",
			"transparency", "financial inclusion",
		},
	},
	"E-commerce": {
		Name: "E-commerce",
		Terms: []string{
			"e-commerce", "online shopping", "digital marketplace", "retail platform",
			"online store", "shopping cart", "payment gateway", "inventory management",
			"dropshipping", "omnichannel", "social commerce", "mobile commerce",
		},
		Regions: []string{
			"India", "Asia-Pacific", "globally", "North America", "Europe",
			"emerging markets", "tier-2 cities", "rural areas",
		},
		BusinessTypes: []string{
			"retailer", "marketplace", "brand", "wholesaler", "distributor",
			"manufacturer", "startup", "enterprise", "small business",
		},
		PainPoints: []string{
			"high cart abandonment", "poor conversion rates", "inventory management",
			"shipping delays", "customer acquisition costs", "return management",
			"payment failures", "competition",
		},
		Actions: []string{
			"increase sales", "reduce costs", "improve customer experience",
			"expand market reach", "optimize inventory", "enhance security",
			"boost conversions", "streamline operations",
		},
		Needs: []string{
			"customer acquisition", "retention strategies", "supply chain optimization",
			"payment processing", "fraud prevention", "mobile optimization",
			"personalization", "analytics and insights",
		},
		UseCases: []string{
			"B2B marketplace", "B2C retail", "fashion e-commerce", "electronics store",
			"grocery delivery", "subscription commerce", "digital products",
			"international selling",
		},
		Features: []string{
			"product catalog", "search functionality", "payment integration",
			"shipping management", "customer reviews", "wish lists",
			"recommendation engine", "mobile app",
		},
		Capabilities: []string{
			"inventory tracking", "order management", "customer analytics",
			"marketing automation", "multi-channel selling", "price optimization",
			"fraud detection", "personalization",
		},
		Benefits: []string{
			"increased revenue", "better customer experience", "operational efficiency",
			"market expansion", "cost reduction", "data-driven insights",
			"scalability", "competitive advantage",
		},
	},
	"SaaS": {
		Name: "SaaS",
		Terms: []string{
			"SaaS", "software as a service", "cloud software", "business software",
			"enterprise software", "productivity tools", "collaboration platform",
			"CRM", "project management", "automation tools",
		},
		Regions: []string{
			"globally", "North America", "Europe", "Asia-Pacific", "India",
			"enterprise markets", "SMB segment", "remote teams",
		},
		BusinessTypes: []string{
			"startup", "enterprise", "SMB", "remote team", "agency",
			"consultancy", "freelancer", "corporation", "non-profit",
		},
		PainPoints: []string{
			"manual processes", "data silos", "poor collaboration", "scalability issues",
			"integration challenges", "security concerns", "high costs",
			"user adoption", "customization needs",
		},
		Actions: []string{
			"automate workflows", "improve collaboration", "integrate systems",
			"scale operations", "reduce costs", "enhance security",
			"increase productivity", "streamline processes",
		},
		Needs: []string{
			"process automation", "team collaboration", "data integration",
			"scalability", "security compliance", "user training",
			"custom workflows", "analytics and reporting",
		},
		UseCases: []string{
			"customer relationship management", "project management",
			"team collaboration", "marketing automation", "sales enablement",
			"HR management", "financial planning", "business intelligence",
		},
		Features: []string{
			"user interface", "API integration", "mobile access", "reporting dashboard",
			"user management", "data backup", "customization options",
			"third-party integrations",
		},
		Capabilities: []string{
			"workflow automation", "data analytics", "real-time collaboration",
			"scalable infrastructure", "security features", "integration options",
			"customization", "mobile support",
		},
		Benefits: []string{
			"increased productivity", "cost savings", "better collaboration",
			"improved efficiency", "scalability", "data insights",
			"competitive advantage", "reduced IT overhead",
		},
	},
	"Healthcare": {
		Name: "Healthcare",
		Terms: []string{
			"healthcare", "medical technology", "telemedicine", "health tech",
			"digital health", "electronic health records", "patient management",
			"medical devices", "healthcare analytics", "clinical software",
		},
		Regions: []string{
			"India", "globally", "developed countries", "emerging markets",
			"rural areas", "urban centers", "healthcare systems",
		},
		BusinessTypes: []string{
			"hospital", "clinic", "healthcare provider", "pharmaceutical company",
			"medical practice", "healthcare startup", "research institution",
			"government health department",
		},
		PainPoints: []string{
			"patient data management", "appointment scheduling", "billing complexity",
			"regulatory compliance", "staff efficiency", "patient engagement",
			"interoperability issues", "cost management",
		},
		Actions: []string{
			"improve patient care", "streamline operations", "reduce costs",
			"enhance efficiency", "ensure compliance", "increase accessibility",
			"optimize workflows", "improve outcomes",
		},
		Needs: []string{
			"patient management", "clinical decision support", "regulatory compliance",
			"data security", "interoperability", "cost reduction",
			"workflow optimization", "patient engagement",
		},
		UseCases: []string{
			"electronic health records", "telemedicine consultations",
			"appointment scheduling", "medical billing", "patient monitoring",
			"clinical research", "pharmaceutical management", "health analytics",
		},
		Features: []string{
			"patient records", "appointment booking", "prescription management",
			"billing system", "clinical notes", "lab integration",
			"patient portal", "mobile access",
		},
		Capabilities: []string{
			"data analytics", "clinical decision support", "patient monitoring",
			"regulatory reporting", "interoperability", "security features",
			"mobile health", "AI-powered insights",
		},
		Benefits: []string{
			"improved patient care", "operational efficiency", "cost reduction",
			"better outcomes", "regulatory compliance", "enhanced accessibility",
			"data-driven decisions", "patient satisfaction",
		},
	},
	"EdTech": {
		Name: "EdTech",
		Terms: []string{
			"education technology", "e-learning", "online education", "digital learning",
			"learning management system", "educational software", "online courses",
			"virtual classroom", "educational platform", "skill development",
		},
		Regions: []string{
			"India", "globally", "developing countries", "remote areas",
			"urban centers", "K-12 schools", "higher education", "corporate training",
		},
		BusinessTypes: []string{
			"educational institution", "corporate training", "individual learner",
			"teacher", "school district", "university", "training company",
			"online course provider",
		},
		PainPoints: []string{
			"student engagement", "learning outcomes", "accessibility issues",
			"cost of education", "personalization needs", "technology adoption",
			"content quality", "assessment challenges",
		},
		Actions: []string{
			"improve learning outcomes", "increase engagement", "reduce costs",
			"enhance accessibility", "personalize learning", "track progress",
			"automate assessment", "facilitate collaboration",
		},
		Needs: []string{
			"personalized learning", "student engagement", "progress tracking",
			"content creation", "assessment tools", "collaboration features",
			"mobile learning", "accessibility support",
		},
		UseCases: []string{
			"online courses", "virtual classrooms", "skill assessments",
			"corporate training", "K-12 education", "professional development",
			"language learning", "certification programs",
		},
		Features: []string{
			"course content", "video lectures", "interactive exercises",
			"progress tracking", "discussion forums", "assessment tools",
			"mobile app", "certification",
		},
		Capabilities: []string{
			"adaptive learning", "content authoring", "student analytics",
			"collaboration tools", "assessment automation", "mobile learning",
			"gamification", "personalization",
		},
		Benefits: []string{
			"improved learning outcomes", "increased accessibility", "cost effectiveness",
			"personalized education", "flexible learning", "skill development",
			"career advancement", "measurable results",
		},
	},
}
