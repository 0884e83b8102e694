package contracts

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	storage_go "github.com/supabase-community/storage-go"

	"staffhub/api-gateway/models"
)

var (
	// ErrSignatureRequired is returned when signing without signature data.
	ErrSignatureRequired = errors.New("signature data must not be empty")
	// ErrAlreadySigned is returned when signing a contract assignment that
	// is not pending. Signatures are never overwritten.
	ErrAlreadySigned = errors.New("contract assignment is already signed")
	// ErrNotOwner is returned when a user signs someone else's contract.
	ErrNotOwner = errors.New("contract assignment does not belong to this user")
)

// AssignmentStore is the slice of the data layer the signing workflow uses.
type AssignmentStore interface {
	GetContractAssignment(id string) (*models.ContractAssignment, error)
	UpdateContractAssignment(id string, fields map[string]interface{}) (*models.ContractAssignment, error)
}

// ProfileStore resolves the signer's profile for document rendering.
type ProfileStore interface {
	GetProfile(id string) (*models.Profile, error)
}

// DocumentRenderer renders a named template into a writer; satisfied by the
// fiber html engine shared with the app.
type DocumentRenderer interface {
	Render(out io.Writer, name string, binding interface{}, layout ...string) error
}

// DocumentStore writes rendered documents to a storage bucket; satisfied by
// the supabase storage client.
type DocumentStore interface {
	UploadFile(bucketID, relativePath string, data io.Reader, fileOptions ...storage_go.FileOptions) (storage_go.FileUploadResponse, error)
}

// Archive bundles what the signing workflow needs to keep a rendered copy of
// every signed contract in the document bucket.
type Archive struct {
	Renderer       DocumentRenderer
	Documents      DocumentStore
	Bucket         string
	CompanyName    string
	CompanyAddress string
}

// Service drives contract assignment signing.
type Service struct {
	assignments AssignmentStore
	profiles    ProfileStore
	archive     Archive
	log         *logrus.Logger
	now         func() time.Time
}

func NewService(assignments AssignmentStore, profiles ProfileStore, archive Archive, log *logrus.Logger) *Service {
	return &Service{
		assignments: assignments,
		profiles:    profiles,
		archive:     archive,
		log:         log,
		now:         time.Now,
	}
}

// Sign stores the signature, moves the assignment to signed and archives the
// rendered document. Only pending assignments may be signed; the signed state
// and the presence of signature_data always coincide.
func (s *Service) Sign(assignmentID, userID, signatureData string) (*models.ContractAssignment, error) {
	if strings.TrimSpace(signatureData) == "" {
		return nil, ErrSignatureRequired
	}

	assignment, err := s.assignments.GetContractAssignment(assignmentID)
	if err != nil {
		return nil, err
	}
	if assignment.UserID.String() != userID {
		return nil, ErrNotOwner
	}
	if assignment.Status != models.ContractPending {
		return nil, ErrAlreadySigned
	}

	if _, err := s.assignments.UpdateContractAssignment(assignmentID, map[string]interface{}{
		"status":         models.ContractSigned,
		"signature_data": signatureData,
		"signed_at":      s.now(),
	}); err != nil {
		return nil, err
	}

	// The update representation carries no embedded contract row; re-read so
	// the archived document can be rendered from the contract body.
	signed, err := s.assignments.GetContractAssignment(assignmentID)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(map[string]interface{}{
		"contract_assignment_id": assignmentID,
		"user_id":                userID,
	}).Info("Contract signed")

	// The signature is the source of truth; archiving the rendered copy is
	// best effort and a failure must not undo the signing.
	path, err := s.archiveDocument(signed)
	if err != nil {
		s.log.WithError(err).WithField("contract_assignment_id", assignmentID).
			Warn("Failed to archive signed contract document")
		return signed, nil
	}

	withDoc, err := s.assignments.UpdateContractAssignment(assignmentID, map[string]interface{}{
		"document_path": path,
	})
	if err != nil {
		s.log.WithError(err).WithField("contract_assignment_id", assignmentID).
			Warn("Failed to record contract document path")
		return signed, nil
	}
	withDoc.Contract = signed.Contract
	return withDoc, nil
}

// archiveDocument renders the signed contract to HTML and stores it in the
// document bucket. Returns the storage path.
func (s *Service) archiveDocument(assignment *models.ContractAssignment) (string, error) {
	if s.archive.Renderer == nil || s.archive.Documents == nil {
		return "", fmt.Errorf("document archive is not configured")
	}
	if assignment.Contract == nil {
		return "", fmt.Errorf("assignment %s has no contract loaded", assignment.ID)
	}

	profile, err := s.profiles.GetProfile(assignment.UserID.String())
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	binding := DocumentBinding(assignment, profile, s.archive.CompanyName, s.archive.CompanyAddress)
	if err := s.archive.Renderer.Render(&buf, "contract", binding); err != nil {
		return "", fmt.Errorf("render contract document: %w", err)
	}

	path := fmt.Sprintf("%s/%s.html", assignment.UserID, assignment.ID)
	contentType := "text/html"
	upsert := true
	if _, err := s.archive.Documents.UploadFile(s.archive.Bucket, path, bytes.NewReader(buf.Bytes()), storage_go.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	}); err != nil {
		return "", fmt.Errorf("upload contract document: %w", err)
	}
	return path, nil
}
