package domain

type Project struct {
	Ownership
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required,min=85,max=5000"`
	Skills      Skills `json:"skills" validate:"omitempty,skill_list"`
	Icon        string `json:"icon" validate:"optional_url"`
	LiveLink    string `json:"liveLink" validate:"optional_url"`
	RepoLink    string `json:"repoLink" validate:"optional_url"`
	ReadmeLink  string `json:"readmeLink" validate:"optional_url"`
	Featured    bool   `json:"featured"`
}

type ProjectPatch struct {
	Title       *string `json:"title" validate:"omitnil,notblank,max=200"`
	Description *string `json:"description" validate:"omitnil,min=85,max=5000"`
	Skills      *Skills `json:"skills" validate:"omitnil,skill_list"`
	Icon        *string `json:"icon" validate:"omitnil,optional_url"`
	LiveLink    *string `json:"liveLink" validate:"omitnil,optional_url"`
	RepoLink    *string `json:"repoLink" validate:"omitnil,optional_url"`
	ReadmeLink  *string `json:"readmeLink" validate:"omitnil,optional_url"`
	Featured    *bool   `json:"featured"`
}

func (p ProjectPatch) Apply(pr *Project) {
	assign(&pr.Title, p.Title)
	assign(&pr.Description, p.Description)
	assign(&pr.Skills, p.Skills)
	assign(&pr.Icon, p.Icon)
	assign(&pr.LiveLink, p.LiveLink)
	assign(&pr.RepoLink, p.RepoLink)
	assign(&pr.ReadmeLink, p.ReadmeLink)
	assign(&pr.Featured, p.Featured)
}

type (
	ProjectRepository = OwnedRepository[Project, ProjectPatch]
	ProjectUsecase    = ResourceUsecase[Project, ProjectPatch]
)
