package profile

import "strings"

// Social media platform keys accepted in a draft.
const (
	PlatformFacebook  = "facebook"
	PlatformInstagram = "instagram"
	PlatformTwitter   = "twitter"
	PlatformLinkedIn  = "linkedIn"
	PlatformWebsite   = "website"
)

// Images holds the club's cover and profile images as data URIs.
type Images struct {
	CoverImage   string `json:"cover_image"`
	ProfileImage string `json:"profile_image"`
}

// SocialMedia maps each supported platform to a URL. Empty means unset.
type SocialMedia struct {
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
	Twitter   string `json:"twitter"`
	LinkedIn  string `json:"linkedin"`
	Website   string `json:"website"`
}

// Contact holds the club's public contact information.
type Contact struct {
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	GoogleMapURL string `json:"google_map_url"`
	Headquarters string `json:"headquarters"`
}

// Details holds the club's free-text profile sections. Values and Avenues
// are ordered and contain no duplicates.
type Details struct {
	Values  []string `json:"values"`
	Avenues []string `json:"avenues"`
	About   string   `json:"about"`
	Mission string   `json:"mission"`
}

// Draft is the working copy of a club's profile during wizard editing.
// It is associated with exactly one club for the lifetime of the session.
type Draft struct {
	ClubID      string      `json:"club_id"`
	Images      Images      `json:"images"`
	SocialMedia SocialMedia `json:"social_media"`
	Contact     Contact     `json:"contact"`
	Details     Details     `json:"details"`
}

// addTag appends value to list unless it is empty after trimming or already
// present. Insertion order of first-seen values is preserved.
func addTag(list []string, value string) []string {
	v := strings.TrimSpace(value)
	if v == "" {
		return list
	}
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}

// removeTag removes value from list, preserving the order of the rest.
func removeTag(list []string, value string) []string {
	out := list[:0]
	for _, existing := range list {
		if existing != value {
			out = append(out, existing)
		}
	}
	return out
}

// AddValue adds a club value tag.
// PRE: none
// POST: Values contains the trimmed tag at most once; no-op for empty input
func (d *Draft) AddValue(value string) {
	d.Details.Values = addTag(d.Details.Values, value)
}

// RemoveValue removes a club value tag.
// POST: Values no longer contains the tag; order of the rest is preserved
func (d *Draft) RemoveValue(value string) {
	d.Details.Values = removeTag(d.Details.Values, value)
}

// AddAvenue adds an avenue tag.
// PRE: none
// POST: Avenues contains the trimmed tag at most once; no-op for empty input
func (d *Draft) AddAvenue(value string) {
	d.Details.Avenues = addTag(d.Details.Avenues, value)
}

// RemoveAvenue removes an avenue tag.
// POST: Avenues no longer contains the tag; order of the rest is preserved
func (d *Draft) RemoveAvenue(value string) {
	d.Details.Avenues = removeTag(d.Details.Avenues, value)
}

// SetSocial sets the URL for a platform. Unknown platforms are ignored and
// reported via the return value.
func (d *Draft) SetSocial(platform, url string) bool {
	switch platform {
	case PlatformFacebook:
		d.SocialMedia.Facebook = url
	case PlatformInstagram:
		d.SocialMedia.Instagram = url
	case PlatformTwitter:
		d.SocialMedia.Twitter = url
	case PlatformLinkedIn:
		d.SocialMedia.LinkedIn = url
	case PlatformWebsite:
		d.SocialMedia.Website = url
	default:
		return false
	}
	return true
}

// CompletionFields returns the profile fields counted by the dashboard's
// completion percentage, in a fixed order.
func (d *Draft) CompletionFields() []string {
	values := ""
	if len(d.Details.Values) > 0 {
		values = "set"
	}
	avenues := ""
	if len(d.Details.Avenues) > 0 {
		avenues = "set"
	}
	return []string{
		d.Images.CoverImage,
		d.Images.ProfileImage,
		d.SocialMedia.Website,
		d.Contact.Email,
		d.Contact.Phone,
		d.Contact.Headquarters,
		values,
		avenues,
		d.Details.About,
		d.Details.Mission,
	}
}

// CompletionPercent returns the share of completion fields that are set,
// as an integer 0..100.
func (d *Draft) CompletionPercent() int {
	fields := d.CompletionFields()
	filled := 0
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			filled++
		}
	}
	return filled * 100 / len(fields)
}
