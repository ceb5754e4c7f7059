package dto

import "itdocsapi/models"

// ClientView is a client with its sites and their addresses embedded.
type ClientView struct {
	ID          uint       `json:"id"`
	Name        string     `json:"name"`
	Phone       string     `json:"phone"`
	Maintenance bool       `json:"maintenance"`
	Sites       []SiteView `json:"sites"`
}

// SiteView is a site nested in a ClientView.
type SiteView struct {
	ID      uint          `json:"id"`
	Name    string        `json:"name"`
	Address []AddressView `json:"address"`
}

// AddressView is an address nested in a SiteView, without identifiers.
type AddressView struct {
	Number  *int   `json:"number"`
	Street  string `json:"street"`
	ZipCode int    `json:"zip_code"`
	City    string `json:"city"`
	Region  string `json:"region"`
	Country string `json:"country"`
}

// NewClientView builds the nested view of a client loaded with its sites and addresses.
func NewClientView(c models.Client) ClientView {
	view := ClientView{
		ID:          c.ID,
		Name:        c.Name,
		Phone:       c.Phone,
		Maintenance: c.Maintenance,
		Sites:       make([]SiteView, 0, len(c.Sites)),
	}
	for _, site := range c.Sites {
		sv := SiteView{
			ID:      site.ID,
			Name:    site.Name,
			Address: make([]AddressView, 0, len(site.Addresses)),
		}
		for _, a := range site.Addresses {
			sv.Address = append(sv.Address, AddressView{
				Number:  a.Number,
				Street:  a.Street,
				ZipCode: a.ZipCode,
				City:    a.City,
				Region:  a.Region,
				Country: a.Country,
			})
		}
		view.Sites = append(view.Sites, sv)
	}
	return view
}
