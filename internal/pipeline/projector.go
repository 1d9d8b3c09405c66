package pipeline

import (
	"cibgen/internal/models"
	"strconv"
)

// Badge design constants. The look is stable, not data-driven; the
// color is the Home Assistant brand blue.
const (
	badgeSchemaVersion = 1
	badgeLabel         = "Installations"
	badgeColor         = "#41bdf5"
)

// Projector derives Shields.io badge descriptors from an
// integration's latest record.
type Projector struct{}

func NewProjector() *Projector {
	return &Projector{}
}

func badge(count int) *models.BadgeDescriptor {
	return &models.BadgeDescriptor{
		SchemaVersion: badgeSchemaVersion,
		Label:         badgeLabel,
		Message:       strconv.Itoa(count),
		Color:         badgeColor,
	}
}

// Project emits the total badge plus one badge per version key
// present in the record. Zero counts are kept: a version with an
// explicit zero exists but is currently unused, which is different
// from the version not existing at all.
func (p *Projector) Project(rec *models.IntegrationRecord) *models.ProjectedBadges {
	out := &models.ProjectedBadges{
		Total:    badge(rec.Total),
		Versions: make(map[string]*models.BadgeDescriptor, len(rec.Versions)),
	}
	for version, count := range rec.Versions {
		out.Versions[version] = badge(count)
	}
	return out
}
