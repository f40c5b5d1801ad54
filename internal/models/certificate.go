package models

import "time"

// Certificate is issued at most once per learner and course
type Certificate struct {
	ID               int        `json:"id"`
	UserID           int        `json:"userId"`
	CourseID         int        `json:"courseId"`
	VerificationCode string     `json:"verificationCode"`
	IssueDate        time.Time  `json:"issueDate"`
	ExpiresAt        *time.Time `json:"expiresAt,omitempty"`
	ScoreSnapshot    *float64   `json:"scoreSnapshot,omitempty"`
}

// IsExpired reports whether the certificate has an expiry date that is not in the future
func (c *Certificate) IsExpired(now time.Time) bool {
	return c.ExpiresAt != nil && !c.ExpiresAt.After(now)
}

// CertificateWithCourse is a certificate listed together with its course title
type CertificateWithCourse struct {
	Certificate
	CourseTitle string `json:"courseTitle"`
}

// CertificateDetails is a certificate joined with the course and learner it was issued for
type CertificateDetails struct {
	Certificate
	CourseTitle  string
	LearnerName  string
	LearnerEmail string
}

// CertificateView is the public, redacted representation of a certificate
type CertificateView struct {
	VerificationCode string     `json:"verificationCode"`
	CourseTitle      string     `json:"courseTitle"`
	LearnerName      string     `json:"learnerName"`
	LearnerEmail     string     `json:"learnerEmail"`
	IssueDate        time.Time  `json:"issueDate"`
	ExpiresAt        *time.Time `json:"expiresAt,omitempty"`
	ScoreSnapshot    *float64   `json:"scoreSnapshot,omitempty"`
}

// VerificationStatus distinguishes the reasons a code is or is not currently valid
type VerificationStatus string

const (
	VerificationValid    VerificationStatus = "valid"
	VerificationExpired  VerificationStatus = "expired"
	VerificationNotFound VerificationStatus = "not_found"
)

// VerificationResult is returned by the public verification lookup
type VerificationResult struct {
	Valid       bool               `json:"valid"`
	Status      VerificationStatus `json:"status"`
	Certificate *CertificateView   `json:"certificate,omitempty"`
}

// MyCertificatesResponse lists the certificates of the current learner
type MyCertificatesResponse struct {
	Certificates    []CertificateWithCourse `json:"certificates"`
	PendingRequests int                     `json:"pendingRequests"`
}
