package types

// Status is a type for the persistence status of a resource in the database.
// Soft deletion is modelled here: deleted rows stay in storage but are
// invisible to ordinary reads at the repository level.
type Status string

const (
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
	StatusDeleted   Status = "deleted"
)
