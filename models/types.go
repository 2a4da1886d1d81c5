package models

// Judging phases
type Phase string

const (
	PhaseExpo  Phase = "expo"
	PhasePanel Phase = "panel"
)

// Valid reports whether p is a known phase.
func (p Phase) Valid() bool {
	return p == PhaseExpo || p == PhasePanel
}

// Rubric sub-score bounds (inclusive)
const (
	RubricMin = 1
	RubricMax = 10
)

// Request types

type CreateProjectRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"max=5000"`
	TeamMembers string `json:"team_members" validate:"max=1000"`
	TableNumber int    `json:"table_number" validate:"min=0"`
}

// Nil fields are left unchanged.
type UpdateProjectRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
	TeamMembers *string `json:"team_members" validate:"omitempty,max=1000"`
	TableNumber *int    `json:"table_number" validate:"omitempty,min=0"`
	IsFinalist  *bool   `json:"is_finalist"`
}

type CreateJudgeRequest struct {
	Name  string `json:"name" validate:"required,max=255"`
	Email string `json:"email" validate:"required,email,max=255"`
}

type SignInRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type SubmitComparisonRequest struct {
	ProjectAID string  `json:"project_a_id" validate:"required"`
	ProjectBID string  `json:"project_b_id" validate:"required,nefield=ProjectAID"`
	WinnerID   *string `json:"winner_id"`
}

type SubmitRubricRequest struct {
	ProjectID             string `json:"project_id" validate:"required"`
	Originality           int    `json:"originality" validate:"min=1,max=10"`
	TechnicalComplexity   int    `json:"technical_complexity" validate:"min=1,max=10"`
	Impact                int    `json:"impact" validate:"min=1,max=10"`
	LearningCollaboration int    `json:"learning_collaboration" validate:"min=1,max=10"`
	Comments              string `json:"comments" validate:"max=5000"`
}

type SelectFinalistsRequest struct {
	Count *int `json:"count" validate:"omitempty,min=0"`
}

type SetPhaseRequest struct {
	Phase Phase `json:"phase" validate:"required,oneof=expo panel"`
}

// Response types

type SignInResponse struct {
	Token string `json:"token"`
	Judge Judge  `json:"judge"`
	Phase Phase  `json:"phase"`
}

type NextPairResponse struct {
	Pair *Pair `json:"pair"`
}

type RankingsResponse struct {
	Phase    Phase           `json:"phase"`
	Rankings []ProjectScore  `json:"rankings,omitempty"`
	Rubric   []RubricRanking `json:"rubric,omitempty"`
}

type FinalistsResponse struct {
	Finalists []Project `json:"finalists"`
}

type PhaseResponse struct {
	Phase Phase `json:"phase"`
}

// Domain types

type Project struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	TeamMembers string `json:"team_members"`
	TableNumber int    `json:"table_number"`
	IsFinalist  bool   `json:"is_finalist"`
}

type Judge struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Comparison is an immutable pairwise judgement. WinnerID is nil when the
// judge skipped the pair.
type Comparison struct {
	ID         string  `json:"id"`
	JudgeID    string  `json:"judge_id"`
	ProjectAID string  `json:"project_a_id"`
	ProjectBID string  `json:"project_b_id"`
	WinnerID   *string `json:"winner_id"`
	Timestamp  int64   `json:"timestamp"` // ms since epoch
}

// Involves reports whether projectID occupies either slot.
func (c Comparison) Involves(projectID string) bool {
	return c.ProjectAID == projectID || c.ProjectBID == projectID
}

type RubricScore struct {
	ID                    string `json:"id"`
	JudgeID               string `json:"judge_id"`
	ProjectID             string `json:"project_id"`
	Originality           int    `json:"originality"`
	TechnicalComplexity   int    `json:"technical_complexity"`
	Impact                int    `json:"impact"`
	LearningCollaboration int    `json:"learning_collaboration"`
	Comments              string `json:"comments"`
	Timestamp             int64  `json:"timestamp"` // ms since epoch
}

type Pair struct {
	ProjectA Project `json:"project_a"`
	ProjectB Project `json:"project_b"`
}

// Win-rate result types

type ProjectScore struct {
	Project     Project `json:"project"`
	Score       float64 `json:"score"`
	Wins        int     `json:"wins"`
	Appearances int     `json:"appearances"`
	Rank        int     `json:"rank"` // 1-indexed ranking
}

type RubricAverages struct {
	ProjectID             string  `json:"project_id"`
	Originality           float64 `json:"originality"`
	TechnicalComplexity   float64 `json:"technical_complexity"`
	Impact                float64 `json:"impact"`
	LearningCollaboration float64 `json:"learning_collaboration"`
	Overall               float64 `json:"overall"`
	Count                 int     `json:"count"`
}

type RubricRanking struct {
	Project  Project        `json:"project"`
	Averages RubricAverages `json:"averages"`
	Rank     int            `json:"rank"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
