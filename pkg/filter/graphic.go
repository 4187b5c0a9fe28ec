package filter

import "github.com/touchpoint-hw/go-touchpoint/pkg/ui"

// videoTagKey is the implementation attribute browsers expose for HTML
// <video> elements through IAccessible2.
const videoTagKey = "tag"

// Graphic matches image-bearing objects: anything with a GRAPHIC or
// IMAGEMAP role, plus video elements detected through the tag attribute.
type Graphic struct{}

func (Graphic) Matches(obj ui.Object) bool {
	if obj == nil {
		return false
	}
	role, err := obj.Role()
	if err != nil {
		return false
	}
	switch role {
	case ui.RoleGraphic, ui.RoleImageMap, ui.RoleVideo:
		return true
	}
	if tag, ok := obj.Attribute(videoTagKey); ok && tag == "video" {
		return true
	}
	return false
}
