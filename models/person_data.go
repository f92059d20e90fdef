package models

import "strings"

// PersonData is the shared attribute set for a person-like record.
// Contact (case-scoped) and Person (global registry) both embed it;
// contacts keep their own denormalized copy, there is no foreign key
// into the registry.
type PersonData struct {
	Name        string `json:"name"`
	DOB         string `json:"dob,omitempty"` // YYYY-MM-DD, kept as entered
	Gender      string `json:"gender,omitempty"`
	HeightCm    int    `json:"height_cm,omitempty"`
	Nationality string `json:"nationality,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
	Email       string `json:"email,omitempty"`
	Instagram   string `json:"instagram,omitempty"`
	Snapchat    string `json:"snapchat,omitempty"`
	TikTok      string `json:"tiktok,omitempty"`
	HairColor   string `json:"hair_color,omitempty"`
	EyeColor    string `json:"eye_color,omitempty"`
	Build       string `json:"build,omitempty"`
	IDDoc       string `json:"id_doc,omitempty"`
	PhotoURL    string `json:"photo_url,omitempty"`
	ELNumber    string `json:"el_number,omitempty"` // legacy EL-Nr. field
	Notes       string `json:"notes,omitempty"`
}

// IdentityKey returns the registry key for this record: trimmed
// lowercased name plus the exact date-of-birth string. Two records with
// the same key are treated as the same person. Records lacking a DOB key
// purely on the name, which can over-merge; that behavior is deliberate.
func (p PersonData) IdentityKey() string {
	return strings.ToLower(strings.TrimSpace(p.Name)) + "|" + strings.TrimSpace(p.DOB)
}

// FillMissingFrom copies every non-empty field of src into the receiver's
// corresponding field only if that field is currently empty. Existing
// non-empty data is never overwritten. Returns true if anything changed.
func (p *PersonData) FillMissingFrom(src PersonData) bool {
	changed := false
	fill := func(dst *string, v string) {
		if *dst == "" && v != "" {
			*dst = v
			changed = true
		}
	}
	fill(&p.Gender, src.Gender)
	if p.HeightCm == 0 && src.HeightCm != 0 {
		p.HeightCm = src.HeightCm
		changed = true
	}
	fill(&p.Nationality, src.Nationality)
	fill(&p.Phone, src.Phone)
	fill(&p.Address, src.Address)
	fill(&p.Email, src.Email)
	fill(&p.Instagram, src.Instagram)
	fill(&p.Snapchat, src.Snapchat)
	fill(&p.TikTok, src.TikTok)
	fill(&p.HairColor, src.HairColor)
	fill(&p.EyeColor, src.EyeColor)
	fill(&p.Build, src.Build)
	fill(&p.IDDoc, src.IDDoc)
	fill(&p.PhotoURL, src.PhotoURL)
	fill(&p.ELNumber, src.ELNumber)
	fill(&p.Notes, src.Notes)
	return changed
}
