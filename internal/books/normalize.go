package books

import (
	"encoding/json"
	"strings"
)

// Person holds the name fields a nested user or owner object may carry.
type Person struct {
	Name      string `json:"name"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// RawBook is a book object as the server actually returns it. Field names vary
// between endpoints and server versions, so every known spelling is accepted
// and Normalize picks through them in a fixed order.
type RawBook struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Author       string  `json:"author"`
	CoverURL     string  `json:"coverUrl"`
	Cover        string  `json:"cover"`
	IsAvailable  *bool   `json:"isAvailable"`
	OwnerID      int     `json:"ownerId"`
	OwnerIDAlt   int     `json:"owner_id"`
	UserID       int     `json:"userId"`
	UserIDAlt    int     `json:"user_id"`
	Username     string  `json:"username"`
	OwnerName    string  `json:"ownerName"`
	OwnerNameAlt string  `json:"owner_name"`
	FirstName    string  `json:"firstName"`
	LastName     string  `json:"lastName"`
	User         *Person `json:"user"`
	Owner        *Person `json:"owner"`
	Distance     string  `json:"distance"`
	State        string  `json:"state"`
}

// ownerExtractors is the owner-name fallback chain, evaluated in order. The
// first extractor returning a non-blank string wins. Flatter and more specific
// fields deliberately outrank nested and generic ones; keep the order intact
// when adding new spellings.
var ownerExtractors = []func(RawBook) string{
	func(r RawBook) string { return r.Username },
	func(r RawBook) string { return r.OwnerName },
	func(r RawBook) string { return r.OwnerNameAlt },
	func(r RawBook) string { return joinName(r.FirstName, r.LastName) },
	func(r RawBook) string { return r.FirstName },
	func(r RawBook) string { return r.LastName },
	func(r RawBook) string {
		if r.User == nil {
			return ""
		}
		return r.User.Username
	},
	func(r RawBook) string {
		if r.User == nil {
			return ""
		}
		return joinName(r.User.FirstName, r.User.LastName)
	},
	func(r RawBook) string {
		if r.User == nil {
			return ""
		}
		return r.User.FirstName
	},
	func(r RawBook) string {
		if r.User == nil {
			return ""
		}
		return r.User.LastName
	},
	func(r RawBook) string {
		if r.Owner == nil {
			return ""
		}
		return r.Owner.Name
	},
	func(r RawBook) string {
		if r.Owner == nil {
			return ""
		}
		return r.Owner.Username
	},
	func(r RawBook) string {
		if r.Owner == nil {
			return ""
		}
		return joinName(r.Owner.FirstName, r.Owner.LastName)
	},
}

func joinName(first, last string) string {
	first = strings.TrimSpace(first)
	last = strings.TrimSpace(last)
	if first == "" || last == "" {
		return ""
	}
	return first + " " + last
}

// OwnerNameOrDefault walks the fallback chain and returns the first usable
// owner name, or "Unknown Owner" when every candidate is absent or blank.
func (r RawBook) OwnerNameOrDefault() string {
	for _, extract := range ownerExtractors {
		if name := strings.TrimSpace(extract(r)); name != "" {
			return name
		}
	}
	return "Unknown Owner"
}

// Normalize converts one raw server object into a canonical Book. It never
// fails; absent or malformed fields degrade to documented defaults.
func Normalize(r RawBook) Book {
	b := Book{
		ID:          r.ID,
		Title:       r.Title,
		Author:      r.Author,
		Cover:       r.CoverURL,
		IsAvailable: true,
		OwnerID:     r.OwnerID,
		OwnerName:   r.OwnerNameOrDefault(),
		Distance:    r.Distance,
		State:       r.State,
	}

	if b.Title == "" {
		b.Title = "Unknown Title"
	}
	if b.Author == "" {
		b.Author = "Unknown Author"
	}

	if b.Cover == "" {
		b.Cover = r.Cover
	}
	if b.Cover == "" {
		b.Cover = PlaceholderCover
	}

	// An explicit false from the server must survive; only absence defaults
	// to available.
	if r.IsAvailable != nil {
		b.IsAvailable = *r.IsAvailable
	}

	if b.OwnerID == 0 {
		b.OwnerID = r.OwnerIDAlt
	}
	if b.OwnerID == 0 {
		b.OwnerID = r.UserID
	}
	if b.OwnerID == 0 {
		b.OwnerID = r.UserIDAlt
	}

	if b.Distance == "" {
		b.Distance = "Unknown distance"
	}

	return b
}

// NormalizeList normalizes every raw book, preserving order.
func NormalizeList(raws []RawBook) []Book {
	out := make([]Book, 0, len(raws))
	for _, r := range raws {
		out = append(out, Normalize(r))
	}
	return out
}

// DecodeList accepts a listing response body that is either a bare JSON array
// or an object with a "books" array, and returns the normalized books. Any
// other shape is an empty result, not an error.
func DecodeList(data []byte) []Book {
	var raws []RawBook
	if err := json.Unmarshal(data, &raws); err == nil {
		return NormalizeList(raws)
	}

	var wrapped struct {
		Books []RawBook `json:"books"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Books != nil {
		return NormalizeList(wrapped.Books)
	}

	return []Book{}
}
