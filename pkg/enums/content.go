package enums

import "fmt"

// ContentType classifies editorial CMS entries.
type ContentType string

const (
	ContentTypePage         ContentType = "page"
	ContentTypeHeroBanner   ContentType = "hero_banner"
	ContentTypeGalleryImage ContentType = "gallery_image"
	ContentTypeAnnouncement ContentType = "announcement"
	ContentTypeContactInfo  ContentType = "contact_info"
)

var validContentTypes = []ContentType{
	ContentTypePage,
	ContentTypeHeroBanner,
	ContentTypeGalleryImage,
	ContentTypeAnnouncement,
	ContentTypeContactInfo,
}

// String implements fmt.Stringer.
func (c ContentType) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ContentType.
func (c ContentType) IsValid() bool {
	for _, candidate := range validContentTypes {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseContentType converts raw input into a ContentType.
func ParseContentType(value string) (ContentType, error) {
	for _, candidate := range validContentTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid content type %q", value)
}

// ContentStatus tracks the publication state of a CMS entry.
type ContentStatus string

const (
	ContentStatusDraft     ContentStatus = "draft"
	ContentStatusPublished ContentStatus = "published"
	ContentStatusArchived  ContentStatus = "archived"
)

// String implements fmt.Stringer.
func (c ContentStatus) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ContentStatus.
func (c ContentStatus) IsValid() bool {
	switch c {
	case ContentStatusDraft, ContentStatusPublished, ContentStatusArchived:
		return true
	}
	return false
}
