package models

import "time"

// CertificateRequestStatus is the review state of a certificate request
type CertificateRequestStatus string

const (
	CertificateRequestPending  CertificateRequestStatus = "pending"
	CertificateRequestApproved CertificateRequestStatus = "approved"
	CertificateRequestRejected CertificateRequestStatus = "rejected"
)

// IsValid reports whether the status is one of the known values
func (s CertificateRequestStatus) IsValid() bool {
	switch s {
	case CertificateRequestPending, CertificateRequestApproved, CertificateRequestRejected:
		return true
	}
	return false
}

// CertificateRequest is a learner's request for a certificate awaiting review
type CertificateRequest struct {
	ID         int                      `json:"id"`
	UserID     int                      `json:"userId"`
	CourseID   int                      `json:"courseId"`
	Status     CertificateRequestStatus `json:"status"`
	ReviewerID *int                     `json:"reviewerId,omitempty"`
	ReviewNote string                   `json:"reviewNote,omitempty"`
	CreatedAt  time.Time                `json:"createdAt"`
	ReviewedAt *time.Time               `json:"reviewedAt,omitempty"`
}

// CertificateRequestListItem is a request row in the review dashboard
type CertificateRequestListItem struct {
	CertificateRequest
	CourseTitle  string `json:"courseTitle"`
	LearnerName  string `json:"learnerName"`
	LearnerEmail string `json:"learnerEmail"`
}

// CertificateRequestResult is the outcome of a learner asking for a certificate
type CertificateRequestResult struct {
	AutoIssued      bool                `json:"autoIssued"`
	AlreadyIssued   bool                `json:"alreadyIssued"`
	PendingApproval bool                `json:"pendingApproval"`
	Certificate     *Certificate        `json:"certificate,omitempty"`
	Request         *CertificateRequest `json:"request,omitempty"`
}

// CertificateStatus tells whether a learner already holds or awaits a certificate
type CertificateStatus struct {
	Issued  bool `json:"issued"`
	Pending bool `json:"pending"`
}

// RequestCertificateInput is the body of POST /certificates/request
type RequestCertificateInput struct {
	CourseID int `json:"courseId" validate:"required,gt=0"`
}

// ReviewCertificateRequestInput is the optional body of approve/reject calls
type ReviewCertificateRequestInput struct {
	Note string `json:"note" validate:"max=500"`
}

// CertificateRequestFilter narrows the review dashboard listing
type CertificateRequestFilter struct {
	Status   *CertificateRequestStatus
	AuthorID *int
	Page     int
	Count    int
}
