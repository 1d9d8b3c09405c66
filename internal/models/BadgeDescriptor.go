package models

// BadgeDescriptor is the payload consumed by Shields.io's generic
// endpoint badge. Field names and casing are part of the contract.
type BadgeDescriptor struct {
	SchemaVersion int    `json:"schemaVersion"`
	Label         string `json:"label"`
	Message       string `json:"message"`
	Color         string `json:"color"`
}

// ProjectedBadges holds every badge derived from one integration's
// latest record: the total badge plus one per version key present
// that day.
type ProjectedBadges struct {
	Total    *BadgeDescriptor
	Versions map[string]*BadgeDescriptor
}
