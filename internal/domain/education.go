package domain

// Education is a degree, course or certification.
type Education struct {
	Ownership
	Title       string `json:"title" validate:"required,max=200"`
	Institution string `json:"institution" validate:"required,max=200"`
	Location    string `json:"location" validate:"required,max=200"`
	StartDate   string `json:"startDate" validate:"required,max=50"`
	EndDate     string `json:"endDate" validate:"required,max=50"`
	Description string `json:"description" validate:"required,min=100,max=5000"`
	Grade       string `json:"grade" validate:"max=50"`
	ProofLink   string `json:"proofLink" validate:"optional_url"`
	Skills      Skills `json:"skills" validate:"omitempty,skill_list"`
}

type EducationPatch struct {
	Title       *string `json:"title" validate:"omitnil,notblank,max=200"`
	Institution *string `json:"institution" validate:"omitnil,notblank,max=200"`
	Location    *string `json:"location" validate:"omitnil,notblank,max=200"`
	StartDate   *string `json:"startDate" validate:"omitnil,notblank,max=50"`
	EndDate     *string `json:"endDate" validate:"omitnil,notblank,max=50"`
	Description *string `json:"description" validate:"omitnil,min=100,max=5000"`
	Grade       *string `json:"grade" validate:"omitnil,max=50"`
	ProofLink   *string `json:"proofLink" validate:"omitnil,optional_url"`
	Skills      *Skills `json:"skills" validate:"omitnil,skill_list"`
}

func (p EducationPatch) Apply(e *Education) {
	assign(&e.Title, p.Title)
	assign(&e.Institution, p.Institution)
	assign(&e.Location, p.Location)
	assign(&e.StartDate, p.StartDate)
	assign(&e.EndDate, p.EndDate)
	assign(&e.Description, p.Description)
	assign(&e.Grade, p.Grade)
	assign(&e.ProofLink, p.ProofLink)
	assign(&e.Skills, p.Skills)
}

type (
	EducationRepository = OwnedRepository[Education, EducationPatch]
	EducationUsecase    = ResourceUsecase[Education, EducationPatch]
)
