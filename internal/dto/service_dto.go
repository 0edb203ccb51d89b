package dto

type CreateServiceRequest struct {
	Name        string  `json:"name" validate:"required,max=120"`
	Description string  `json:"description" validate:"max=2000"`
	Category    string  `json:"category" validate:"required,max=60"`
	HourlyRate  float64 `json:"hourlyRate" validate:"gte=0"`
}

type UpdateServiceRequest struct {
	Name        Optional[string]  `json:"name"`
	Description Optional[string]  `json:"description"`
	Category    Optional[string]  `json:"category"`
	HourlyRate  Optional[float64] `json:"hourlyRate"`
}
