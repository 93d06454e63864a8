package content

// Navigation is a menu placed at a layout location (header, footer...).
type Navigation struct {
	ID       string   `json:"id" yaml:"id"`
	Location string   `json:"location" yaml:"location"`
	Title    string   `json:"title" yaml:"title"`
	Items    []string `json:"items" yaml:"items"`
}

// NavigationItem is one menu entry. Internal entries reference an item by id
// and get their Link resolved from that item's slug.
type NavigationItem struct {
	ID       string   `json:"id" yaml:"id"`
	Title    string   `json:"title" yaml:"title"`
	Link     string   `json:"link" yaml:"link"`
	ItemID   string   `json:"itemId" yaml:"itemId"`
	External bool     `json:"external" yaml:"external"`
	Children []string `json:"children" yaml:"children"`
}
