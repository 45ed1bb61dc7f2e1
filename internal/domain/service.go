package domain

// Service is an offering listed on the public site, e.g. "Backend development".
type Service struct {
	Ownership
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required,min=100,max=5000"`
	Icon        string `json:"icon" validate:"optional_url"`
}

type ServicePatch struct {
	Title       *string `json:"title" validate:"omitnil,notblank,max=200"`
	Description *string `json:"description" validate:"omitnil,min=100,max=5000"`
	Icon        *string `json:"icon" validate:"omitnil,optional_url"`
}

func (p ServicePatch) Apply(s *Service) {
	assign(&s.Title, p.Title)
	assign(&s.Description, p.Description)
	assign(&s.Icon, p.Icon)
}

type (
	ServiceRepository = OwnedRepository[Service, ServicePatch]
	ServiceUsecase    = ResourceUsecase[Service, ServicePatch]
)
