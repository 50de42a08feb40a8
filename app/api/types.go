package api

import (
	"time"

	"github.com/dkoval/linktrack/app/database"
	"github.com/dkoval/linktrack/app/links"
	"github.com/dkoval/linktrack/app/mail"
)

// TrackerInterface reconciles a candidate batch against the persisted store.
type TrackerInterface interface {
	Run(candidates []string, now time.Time) (links.Result, error)
}

var _ TrackerInterface = (*links.Tracker)(nil)

type Handler struct {
	normalizer  *links.Normalizer
	tracker     TrackerInterface
	linkRepo    database.LinkRepository
	mailer      mail.Sender
	apiToken    string
	notifyEmail string
}

// SubmitResponse is the uniform success shape of the submission endpoint.
type SubmitResponse struct {
	OK       bool `json:"ok"`
	Received int  `json:"received"`
	Added    int  `json:"added"`
	Pending  int  `json:"pending"`
}

// ErrorResponse is the uniform failure shape; every failing code path of the
// API returns it, authorization failures included.
type ErrorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

type submitRequest struct {
	URLs []string `json:"urls"`
}

type statusRequest struct {
	URL    string `json:"url"`
	Status string `json:"status"`
}
