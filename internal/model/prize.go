package model

// Prize is a catalog listing students can redeem points for.
// Stock is decremented only by the exchange engine; restocking is an
// explicit edit through the catalog.
type Prize struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int    `json:"price"`
	Stock    int    `json:"stock"`
	Image    string `json:"image,omitempty"`
	Category string `json:"category,omitempty"`
}
