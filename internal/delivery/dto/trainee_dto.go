package dto

type AssignSupervisorRequest struct {
	Supervisor string `json:"supervisor" validate:"required"`
}

type TraineeReviewRequest struct {
	Comment string `json:"comment" validate:"required,max=2000"`
}
