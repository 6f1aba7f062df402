package props

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// maxImages caps how many images a prop may carry; extra entries are dropped.
const maxImages = 5

// Image is one ordered catalog image.
type Image struct {
	ID       uuid.UUID `json:"id"`
	URL      string    `json:"image_url"`
	Position int       `json:"order"`
}

// Prop is a catalog entry. Price and PrintCost are dollar amounts;
// PrintCost is zero for props that cannot be printed.
type Prop struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	PrintCost   float64   `json:"print_cost"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
	Images      []Image   `json:"images"`
}

// URLList accepts image lists in both wire shapes the admin UI sends:
// plain URL strings and objects carrying an image_url field.
type URLList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *URLList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	urls := make([]string, 0, len(raw))
	for _, entry := range raw {
		var s string
		if err := json.Unmarshal(entry, &s); err == nil {
			urls = append(urls, s)
			continue
		}
		var obj struct {
			URL string `json:"image_url"`
		}
		if err := json.Unmarshal(entry, &obj); err != nil {
			return err
		}
		if obj.URL != "" {
			urls = append(urls, obj.URL)
		}
	}
	*l = urls
	return nil
}

// Input carries the writable fields of a prop.
type Input struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	PrintCost   float64 `json:"print_cost"`
	Category    string  `json:"category"`
	Images      URLList `json:"images"`
}

// Patch carries a partial admin update; nil fields are left untouched.
type Patch struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	PrintCost   *float64 `json:"print_cost"`
	Category    *string  `json:"category"`
	Images      *URLList `json:"images"`
}

func clampImages(urls []string) []string {
	cleaned := make([]string, 0, len(urls))
	for _, u := range urls {
		if u == "" {
			continue
		}
		cleaned = append(cleaned, u)
		if len(cleaned) == maxImages {
			break
		}
	}
	return cleaned
}
