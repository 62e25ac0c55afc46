package location

type CreateLocationRequest struct {
	ClientID         *string `json:"client_id"`
	ClientName       *string `json:"client_name"`
	LocationName     string  `json:"location_name" binding:"required"`
	Address          *string `json:"address"`
	ServiceFrequency *string `json:"service_frequency"`
	ServiceDays      []int   `json:"service_days"`
	NextServiceDate  *string `json:"next_service_date"`
}

type UpdateLocationRequest struct {
	ClientID         *string `json:"client_id"`
	ClientName       *string `json:"client_name"`
	LocationName     string  `json:"location_name" binding:"required"`
	Address          *string `json:"address"`
	ServiceFrequency *string `json:"service_frequency"`
	ServiceDays      []int   `json:"service_days"`
	NextServiceDate  *string `json:"next_service_date"`
	Active           *bool   `json:"active"`
}

type LocationResponse struct {
	ID               string  `json:"id"`
	ClientID         *string `json:"client_id,omitempty"`
	ClientName       *string `json:"client_name,omitempty"`
	LocationName     string  `json:"location_name"`
	Address          *string `json:"address,omitempty"`
	ServiceFrequency *string `json:"service_frequency,omitempty"`
	ServiceDays      []int   `json:"service_days,omitempty"`
	NextServiceDate  *string `json:"next_service_date,omitempty"`
	LastServiceDate  *string `json:"last_service_date,omitempty"`
	Active           bool    `json:"active"`
}
