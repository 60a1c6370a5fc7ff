package domain

type Publisher struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	LogoURL     string   `json:"logoUrl,omitempty"`
	Founded     int      `json:"founded,omitempty"`
	Description string   `json:"description,omitempty"`
	ProductIDs  []string `json:"productIds,omitempty"`
}
