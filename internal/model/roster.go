package model

// Role is an explicit consortium role requirement on a roster entry.
type Role string

const (
	RoleLeader Role = "leader"
	RoleMember Role = "member"
	RoleAny    Role = ""
)

// PartnerRelation describes how two roster companies relate when forming teams.
type PartnerRelation string

const (
	// RelationRequires means the partner must be on the same team.
	RelationRequires PartnerRelation = "requires"
	// RelationAvoidPair means the two companies must not share a team.
	RelationAvoidPair PartnerRelation = "avoid-pair"
	// RelationPaired means the two companies are habitually grouped together.
	RelationPaired PartnerRelation = "paired"
)

// PartnerRule constrains which companies a roster entry may team with.
type PartnerRule struct {
	Partner     string          `json:"partner" yaml:"partner"`
	Relation    PartnerRelation `json:"relation" yaml:"relation"`
	PartnerRole Role            `json:"partnerRole,omitempty" yaml:"partnerRole,omitempty"`
}

// CompanyPreset is one roster entry: a candidate company annotated with its
// solo-eligibility rules, role requirement, and partnership constraints.
type CompanyPreset struct {
	Name               string        `json:"name" yaml:"name"`
	AllowSolo          *bool         `json:"allowSolo,omitempty" yaml:"allowSolo,omitempty"` // nil means true
	RequiredRole       Role          `json:"requiredRole,omitempty" yaml:"requiredRole,omitempty"`
	PartnerRules       []PartnerRule `json:"partnerRules,omitempty" yaml:"partnerRules,omitempty"`
	MinEstimatedAmount int64         `json:"minEstimatedAmount,omitempty" yaml:"minEstimatedAmount,omitempty"`
	MaxEstimatedAmount int64         `json:"maxEstimatedAmount,omitempty" yaml:"maxEstimatedAmount,omitempty"`
	MinShareAmount     int64         `json:"minShareAmount,omitempty" yaml:"minShareAmount,omitempty"`
	RequireDutyShare   bool          `json:"requireDutyShare,omitempty" yaml:"requireDutyShare,omitempty"`
	DisallowedOwners   []string      `json:"disallowedOwners,omitempty" yaml:"disallowedOwners,omitempty"`
	AllowedOwners      []string      `json:"allowedOwners,omitempty" yaml:"allowedOwners,omitempty"`
	DefaultShare       int           `json:"defaultShare,omitempty" yaml:"defaultShare,omitempty"`
	AllowSingleBid     bool          `json:"allowSingleBid,omitempty" yaml:"allowSingleBid,omitempty"`
}

// SoloAllowed resolves the AllowSolo default: absent means allowed.
func (p CompanyPreset) SoloAllowed() bool {
	return p.AllowSolo == nil || *p.AllowSolo
}

// Roster is the full roster/preset document, keyed region → trade category.
type Roster struct {
	Version int                                   `json:"version" yaml:"version"`
	Regions map[string]map[string][]CompanyPreset `json:"regions" yaml:"regions"`
}

// Entries returns the preset list for a region/trade pair, or nil.
func (r *Roster) Entries(region, trade string) []CompanyPreset {
	trades, ok := r.Regions[region]
	if !ok {
		return nil
	}
	return trades[trade]
}

// TeamSlot is one company placed on a team, with the live candidate record it
// resolved to (nil when the preset matched no candidate).
type TeamSlot struct {
	Name      string         `json:"name"`
	Preset    CompanyPreset  `json:"preset"`
	Candidate map[string]any `json:"candidate,omitempty"`
	Resolved  bool           `json:"resolved"`
}

// Team is one proposed consortium: a leader, its members, and the ordered
// percentage share breakdown (leader first).
type Team struct {
	Leader  TeamSlot   `json:"leader"`
	Members []TeamSlot `json:"members"`
	Shares  []int      `json:"shares"`
}

// Size returns the number of companies on the team.
func (t Team) Size() int { return 1 + len(t.Members) }
