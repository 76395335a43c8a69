// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package containers

// FieldCount says how many fields of each category are available for a
// person. Zero means none or unknown.
type FieldCount struct {
	Addresses       int `json:"addresses,omitempty" yaml:"addresses,omitempty"`
	Ethnicities     int `json:"ethnicities,omitempty" yaml:"ethnicities,omitempty"`
	Emails          int `json:"emails,omitempty" yaml:"emails,omitempty"`
	DOBs            int `json:"dobs,omitempty" yaml:"dobs,omitempty"`
	Genders         int `json:"genders,omitempty" yaml:"genders,omitempty"`
	UserIDs         int `json:"user_ids,omitempty" yaml:"user_ids,omitempty"`
	SocialProfiles  int `json:"social_profiles,omitempty" yaml:"social_profiles,omitempty"`
	Educations      int `json:"educations,omitempty" yaml:"educations,omitempty"`
	Jobs            int `json:"jobs,omitempty" yaml:"jobs,omitempty"`
	Images          int `json:"images,omitempty" yaml:"images,omitempty"`
	Languages       int `json:"languages,omitempty" yaml:"languages,omitempty"`
	OriginCountries int `json:"origin_countries,omitempty" yaml:"origin_countries,omitempty"`
	Names           int `json:"names,omitempty" yaml:"names,omitempty"`
	Phones          int `json:"phones,omitempty" yaml:"phones,omitempty"`
	Relationships   int `json:"relationships,omitempty" yaml:"relationships,omitempty"`
	Usernames       int `json:"usernames,omitempty" yaml:"usernames,omitempty"`
	MobilePhones    int `json:"mobile_phones,omitempty" yaml:"mobile_phones,omitempty"`
	LandlinePhones  int `json:"landline_phones,omitempty" yaml:"landline_phones,omitempty"`
}

type counter struct {
	key string
	n   *int
}

func (c *FieldCount) counters() []counter {
	return []counter{
		{"addresses", &c.Addresses},
		{"ethnicities", &c.Ethnicities},
		{"emails", &c.Emails},
		{"dobs", &c.DOBs},
		{"genders", &c.Genders},
		{"user_ids", &c.UserIDs},
		{"social_profiles", &c.SocialProfiles},
		{"educations", &c.Educations},
		{"jobs", &c.Jobs},
		{"images", &c.Images},
		{"languages", &c.Languages},
		{"origin_countries", &c.OriginCountries},
		{"names", &c.Names},
		{"phones", &c.Phones},
		{"relationships", &c.Relationships},
		{"usernames", &c.Usernames},
		{"mobile_phones", &c.MobilePhones},
		{"landline_phones", &c.LandlinePhones},
	}
}

// FieldCountFromWire reads the known counters from m. Negative or
// non-numeric values count as zero.
func FieldCountFromWire(m map[string]any) *FieldCount {
	c := &FieldCount{}
	a := attrs(m)
	for _, ctr := range c.counters() {
		if n := int(a.float(ctr.key)); n > 0 {
			*ctr.n = n
		}
	}
	return c
}

// ToWire emits the positive counters only.
func (c *FieldCount) ToWire() map[string]any {
	m := map[string]any{}
	for _, ctr := range c.counters() {
		if *ctr.n > 0 {
			m[ctr.key] = *ctr.n
		}
	}
	return m
}

// AvailableData splits the available field counts into those included in a
// basic response and those requiring a premium one.
type AvailableData struct {
	Basic   *FieldCount `json:"basic,omitempty" yaml:"basic,omitempty"`
	Premium *FieldCount `json:"premium,omitempty" yaml:"premium,omitempty"`
}

func AvailableDataFromWire(m map[string]any) *AvailableData {
	d := &AvailableData{}
	if basic, ok := object(m["basic"]); ok && len(basic) > 0 {
		d.Basic = FieldCountFromWire(basic)
	}
	if premium, ok := object(m["premium"]); ok && len(premium) > 0 {
		d.Premium = FieldCountFromWire(premium)
	}
	return d
}

func (d *AvailableData) ToWire() map[string]any {
	m := map[string]any{}
	if d.Basic != nil {
		m["basic"] = d.Basic.ToWire()
	}
	if d.Premium != nil {
		m["premium"] = d.Premium.ToWire()
	}
	return m
}
