package books

// PlaceholderCover is the sentinel cover path meaning "no real cover provided".
const PlaceholderCover = "/placeholder.svg"

// Book is the canonical record every server response is normalized into.
// Only ID is stable across fetches; the server is free to change its response
// shape between calls and the normalizer re-derives everything else each time.
type Book struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Cover       string `json:"cover"`
	IsAvailable bool   `json:"isAvailable"`
	OwnerID     int    `json:"ownerId"`
	OwnerName   string `json:"ownerName"`
	Distance    string `json:"distance"`
	State       string `json:"state,omitempty"`
}

// HasCover reports whether the book carries a real cover URL. The placeholder
// sentinel counts as no cover.
func (b Book) HasCover() bool {
	return b.Cover != "" && b.Cover != PlaceholderCover
}

// DisplayState returns the lifecycle label for detail views. IsAvailable is the
// canonical availability signal; State is display-only and derived from it when
// the server omits the field.
func (b Book) DisplayState() string {
	if b.State != "" {
		return b.State
	}
	if b.IsAvailable {
		return "Available"
	}
	return "Not Available"
}
