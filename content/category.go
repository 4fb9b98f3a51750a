package content

import (
	"bytes"
	"fmt"
	"strings"
)

/* Category is the fixed set of sections an article can be filed under.
 * Using a dedicated type lets the compiler catch misuse instead of passing raw strings around
 */
type Category int

const (
	Technology Category = iota + 1
	Business
	Marketing
	Design
	Development
	Lifestyle
	News
	Tutorials
)

// DefaultCategory is used when a request names no category
const DefaultCategory = Technology

var allCategories = []Category{Technology, Business, Marketing, Design, Development, Lifestyle, News, Tutorials}

func (c Category) String() string {
	switch c {
	case Technology:
		return "Technology"
	case Business:
		return "Business"
	case Marketing:
		return "Marketing"
	case Design:
		return "Design"
	case Development:
		return "Development"
	case Lifestyle:
		return "Lifestyle"
	case News:
		return "News"
	case Tutorials:
		return "Tutorials"
	}
	return "Unknown"
}

// MarshalJSON encodes the category by name
func (c Category) MarshalJSON() ([]byte, error) {
	buffer := bytes.NewBufferString(`"`)
	buffer.WriteString(c.String())
	buffer.WriteString(`"`)
	return buffer.Bytes(), nil
}

// ParseCategory matches a category name case-insensitively
func ParseCategory(s string) (Category, error) {
	name := strings.TrimSpace(s)
	for _, c := range allCategories {
		if strings.EqualFold(c.String(), name) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown category: %q", s)
}

// CategoryNames lists every valid category name in declaration order
func CategoryNames() []string {
	names := make([]string, len(allCategories))
	for i, c := range allCategories {
		names[i] = c.String()
	}
	return names
}
