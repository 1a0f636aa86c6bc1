package event_bus

const (
	CategoryDeletedEvent EventType = "category.deleted"
)

// CategoryDeleted is published after a custom category has been removed. Subscribers move
// records still pointing at Name to the fallback category.
type CategoryDeleted struct {
	UserId   int
	Name     string
	Fallback string
}
