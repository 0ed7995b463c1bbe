package queue

import (
	"villagetick/internal/app/notice"
	"villagetick/internal/app/shared/view"
	"villagetick/internal/domain/timed"
)

type StartRequest struct {
	VillageID string     `json:"-"`
	Kind      timed.Kind `json:"kind"`
	Subject   string     `json:"subject"`
	Quantity  int        `json:"quantity"`
}

type JobRequest struct {
	JobID string
}

type Response struct {
	Notice    notice.Notice   `json:"notice"`
	Job       view.Job        `json:"job"`
	Resources []view.Resource `json:"resources,omitempty"`
}
