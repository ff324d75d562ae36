package assignment

import "cleanops/internal/domain"

type ProgressRequest struct {
	Progress        int `json:"progress" binding:"gte=0,lte=100"`
	PhotosSubmitted int `json:"photos_submitted" binding:"gte=0"`
}

type PhotoRequest struct {
	Kind string `json:"kind" binding:"required,oneof=before after issue"`
	URL  string `json:"url" binding:"required,url"`
}

type workerRequest struct {
	WorkerID string `json:"worker_id" binding:"required"`
}

// View is a list row: the assignment plus the job and worker context the
// console shows alongside it.
type View struct {
	domain.Assignment
	PropertyName string `json:"property_name"`
	WorkerName   string `json:"worker_name"`
}

type Detail struct {
	domain.Assignment
	Job    domain.JobPost `json:"job"`
	Photos []domain.Photo `json:"photos"`
}
