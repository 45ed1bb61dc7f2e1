package domain

// Job is a position in the owner's work history.
type Job struct {
	Ownership
	Title       string `json:"title" validate:"required,max=200"`
	CompanyName string `json:"companyName" validate:"required,max=200"`
	Location    string `json:"location" validate:"required,max=200"`
	StartDate   string `json:"startDate" validate:"required,max=50"`
	EndDate     string `json:"endDate" validate:"required,max=50"`
	Description string `json:"description" validate:"required,min=100,max=5000"`
	Skills      Skills `json:"skills" validate:"omitempty,skill_list"`
	CompanyLogo string `json:"companyLogo" validate:"optional_url"`
}

type JobPatch struct {
	Title       *string `json:"title" validate:"omitnil,notblank,max=200"`
	CompanyName *string `json:"companyName" validate:"omitnil,notblank,max=200"`
	Location    *string `json:"location" validate:"omitnil,notblank,max=200"`
	StartDate   *string `json:"startDate" validate:"omitnil,notblank,max=50"`
	EndDate     *string `json:"endDate" validate:"omitnil,notblank,max=50"`
	Description *string `json:"description" validate:"omitnil,min=100,max=5000"`
	Skills      *Skills `json:"skills" validate:"omitnil,skill_list"`
	CompanyLogo *string `json:"companyLogo" validate:"omitnil,optional_url"`
}

func (p JobPatch) Apply(j *Job) {
	assign(&j.Title, p.Title)
	assign(&j.CompanyName, p.CompanyName)
	assign(&j.Location, p.Location)
	assign(&j.StartDate, p.StartDate)
	assign(&j.EndDate, p.EndDate)
	assign(&j.Description, p.Description)
	assign(&j.Skills, p.Skills)
	assign(&j.CompanyLogo, p.CompanyLogo)
}

type (
	JobRepository = OwnedRepository[Job, JobPatch]
	JobUsecase    = ResourceUsecase[Job, JobPatch]
)
