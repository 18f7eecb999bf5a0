package domain

// RoleType is the closed set of role categories. Classification always
// yields a member of this set; "Other" marks the absence of a confident
// match, never an unset value.
type RoleType string

// Role categories, in classifier priority order (Developer first,
// Management last). The scan order matters: "Tech Lead" must resolve to
// Developer before the Management keywords get a chance.
const (
	RoleDeveloper            RoleType = "Developer"
	RoleAnalyst              RoleType = "Analyst"
	RoleQA                   RoleType = "QA"
	RolePM                   RoleType = "PM"
	RoleDesigner             RoleType = "Designer"
	RoleSales                RoleType = "Sales"
	RoleHR                   RoleType = "HR"
	RoleMarketing            RoleType = "Marketing"
	RoleLegal                RoleType = "Legal"
	RoleHealthcare           RoleType = "Healthcare"
	RoleFinance              RoleType = "Finance"
	RoleGeneralEngineering   RoleType = "General Engineering"
	RoleManufacturing        RoleType = "Manufacturing"
	RoleConstruction         RoleType = "Construction"
	RoleRetail               RoleType = "Retail"
	RoleHospitality          RoleType = "Hospitality"
	RoleLogistics            RoleType = "Logistics"
	RoleEducation            RoleType = "Education"
	RoleSocialServices       RoleType = "Social Services"
	RoleTechnicalSpecialists RoleType = "Technical Specialists"
	RoleElectromechanics     RoleType = "Electromechanics"
	RoleSupport              RoleType = "Support"
	RoleOperations           RoleType = "Operations"
	RoleService              RoleType = "Service"
	RoleManagement           RoleType = "Management"
	RoleOther                RoleType = "Other"
)

// AllRoleTypes returns every member of the role taxonomy, in priority order.
func AllRoleTypes() []RoleType {
	return []RoleType{
		RoleDeveloper, RoleAnalyst, RoleQA, RolePM, RoleDesigner,
		RoleSales, RoleHR, RoleMarketing, RoleLegal, RoleHealthcare,
		RoleFinance, RoleGeneralEngineering, RoleManufacturing,
		RoleConstruction, RoleRetail, RoleHospitality, RoleLogistics,
		RoleEducation, RoleSocialServices, RoleTechnicalSpecialists,
		RoleElectromechanics, RoleSupport, RoleOperations, RoleService,
		RoleManagement, RoleOther,
	}
}

// Valid reports whether r is a member of the closed role set.
func (r RoleType) Valid() bool {
	for _, known := range AllRoleTypes() {
		if r == known {
			return true
		}
	}
	return false
}

// TechRoles is the set of roles considered tech for AI-washing detection.
// A non-tech role using AI buzzwords gets the ai_washing flag.
var TechRoles = map[RoleType]bool{
	RoleDeveloper: true,
	RoleAnalyst:   true,
	RoleQA:        true,
	RolePM:        true,
	RoleDesigner:  true,
}

// SeniorityLevel is the five-level seniority scale.
type SeniorityLevel string

// Seniority levels, in detector priority order.
const (
	SeniorityExecutive SeniorityLevel = "Executive"
	SeniorityLead      SeniorityLevel = "Lead"
	SenioritySenior    SeniorityLevel = "Senior"
	SeniorityJunior    SeniorityLevel = "Junior"
	SeniorityMid       SeniorityLevel = "Mid"
)

// AllSeniorityLevels returns every seniority level, in detector priority order.
func AllSeniorityLevels() []SeniorityLevel {
	return []SeniorityLevel{
		SeniorityExecutive, SeniorityLead, SenioritySenior,
		SeniorityJunior, SeniorityMid,
	}
}

// TechStatus is the coarse technology-stack currency classification.
type TechStatus string

// Tech status values.
const (
	TechModern   TechStatus = "Modern"
	TechStable   TechStatus = "Stable"
	TechDinosaur TechStatus = "Dinosaur"
)

// WorkModel is the work arrangement classification.
type WorkModel string

// Work model values.
const (
	WorkRemote  WorkModel = "Remote"
	WorkHybrid  WorkModel = "Hybrid"
	WorkOffice  WorkModel = "Office"
	WorkUnclear WorkModel = "Unclear"
)

// Region is the canonical location hub.
type Region string

// Regions. Everything outside the three hubs collapses to Other.
const (
	RegionPrague  Region = "Prague"
	RegionBrno    Region = "Brno"
	RegionOstrava Region = "Ostrava"
	RegionOther   Region = "Other"
)

// ContractType is the Czech contract arrangement classification.
type ContractType string

// Contract types. "Brigáda" is the canonical spelling everywhere; the
// enrichment and the query surface must agree on it.
const (
	ContractHPP     ContractType = "HPP"
	ContractBrigada ContractType = "Brigáda"
	ContractICO     ContractType = "IČO"
	ContractOther   ContractType = "Other"
)

// AllContractTypes returns every contract type.
func AllContractTypes() []ContractType {
	return []ContractType{ContractHPP, ContractBrigada, ContractICO, ContractOther}
}

// Legal flag identifiers emitted by the labour-law audit. Advisory only.
const (
	LegalFlagGenderDiscrimination = "gender_discrimination"
	LegalFlagAgeDiscrimination    = "age_discrimination"
	LegalFlagFamilyDiscrimination = "family_status_discrimination"
	LegalFlagSvarcsystem          = "svarcsystem"
)
