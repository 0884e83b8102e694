package contracts

import (
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	storage_go "github.com/supabase-community/storage-go"

	"staffhub/api-gateway/internal/store"
	"staffhub/api-gateway/models"
)

func TestSubstitute(t *testing.T) {
	text := "Between {{company_name}} and {{full_name}}, born {{date_of_birth}}."
	vars := map[string]string{
		"company_name":  "Staffhub GmbH",
		"full_name":     "Erika Mustermann",
		"date_of_birth": "01.02.1990",
	}

	got := Substitute(text, vars)
	want := "Between Staffhub GmbH and Erika Mustermann, born 01.02.1990."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSubstitute_Idempotent(t *testing.T) {
	text := "{{full_name}} ({{email}}) in {{city}}"
	vars := map[string]string{
		"full_name": "Max Mustermann",
		"email":     "max@example.com",
		"city":      "Berlin",
	}

	once := Substitute(text, vars)
	twice := Substitute(once, vars)
	if once != twice {
		t.Errorf("substitution not idempotent: %q vs %q", once, twice)
	}
	if strings.Contains(once, "{{") {
		t.Errorf("substituted text still contains placeholder tokens: %q", once)
	}
}

func TestSubstitute_ValueWithPlaceholderStaysInert(t *testing.T) {
	// A profile value that happens to contain placeholder syntax is data,
	// not a template: it must neither be expanded nor change the result of
	// a second application.
	vars := map[string]string{
		"city":         "{{company_name}}",
		"company_name": "Staffhub GmbH",
	}

	once := Substitute("Wohnort: {{city}}", vars)
	if strings.Contains(once, "Staffhub GmbH") {
		t.Errorf("value must not be expanded as a template, got %q", once)
	}

	twice := Substitute(once, vars)
	if once != twice {
		t.Errorf("substitution not idempotent with token-bearing value: %q vs %q", once, twice)
	}
}

func TestSubstitute_UnknownPlaceholderKept(t *testing.T) {
	got := Substitute("Hello {{nobody}}", map[string]string{"full_name": "x"})
	if got != "Hello {{nobody}}" {
		t.Errorf("unknown placeholder must stay intact, got %q", got)
	}
}

func TestProfileVariables(t *testing.T) {
	first := "Erika"
	profile := &models.Profile{
		ID:        uuid.New(),
		Email:     "erika@example.com",
		FirstName: &first,
	}
	now := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	vars := ProfileVariables(profile, "Staffhub GmbH", "Hauptstr. 1, Berlin", now)
	if vars["first_name"] != "Erika" {
		t.Errorf("expected first name, got %q", vars["first_name"])
	}
	if vars["last_name"] != "" {
		t.Errorf("missing profile fields must map to empty, got %q", vars["last_name"])
	}
	if vars["date"] != "01.04.2025" {
		t.Errorf("expected formatted date, got %q", vars["date"])
	}
	if vars["full_name"] != "Erika" {
		t.Errorf("expected full name fallback, got %q", vars["full_name"])
	}
}

// fakeContractStore is an in-memory AssignmentStore and ProfileStore. Reads
// return the embedded contract like the joined select does; update results
// do not, like the plain representation.
type fakeContractStore struct {
	assignments map[string]*models.ContractAssignment
	profiles    map[string]*models.Profile
}

func (f *fakeContractStore) GetContractAssignment(id string) (*models.ContractAssignment, error) {
	a, ok := f.assignments[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (f *fakeContractStore) UpdateContractAssignment(id string, fields map[string]interface{}) (*models.ContractAssignment, error) {
	a, ok := f.assignments[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	for key, value := range fields {
		switch key {
		case "status":
			a.Status = value.(string)
		case "signature_data":
			sig := value.(string)
			a.SignatureData = &sig
		case "signed_at":
			at := value.(time.Time)
			a.SignedAt = &at
		case "document_path":
			path := value.(string)
			a.DocumentPath = &path
		}
	}
	copied := *a
	copied.Contract = nil
	return &copied, nil
}

func (f *fakeContractStore) GetProfile(id string) (*models.Profile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return p, nil
}

// fakeRenderer records every render call.
type fakeRenderer struct {
	calls    int
	lastName string
}

func (f *fakeRenderer) Render(out io.Writer, name string, binding interface{}, layout ...string) error {
	f.calls++
	f.lastName = name
	_, err := out.Write([]byte("<html>signed</html>"))
	return err
}

// fakeDocumentStore records uploads.
type fakeDocumentStore struct {
	uploads []string
	bucket  string
}

func (f *fakeDocumentStore) UploadFile(bucketID, relativePath string, data io.Reader, fileOptions ...storage_go.FileOptions) (storage_go.FileUploadResponse, error) {
	f.bucket = bucketID
	f.uploads = append(f.uploads, relativePath)
	return storage_go.FileUploadResponse{}, nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func newSigningFixture(archive Archive) (*Service, *fakeContractStore, *models.ContractAssignment) {
	f := &fakeContractStore{
		assignments: make(map[string]*models.ContractAssignment),
		profiles:    make(map[string]*models.Profile),
	}
	contract := &models.Contract{
		ID:      uuid.New(),
		Title:   "Rahmenvertrag",
		Content: "Zwischen {{company_name}} und {{full_name}}.",
	}
	assignment := &models.ContractAssignment{
		ID:         uuid.New(),
		ContractID: contract.ID,
		UserID:     uuid.New(),
		Status:     models.ContractPending,
		AssignedAt: time.Now(),
		Contract:   contract,
	}
	f.assignments[assignment.ID.String()] = assignment
	f.profiles[assignment.UserID.String()] = &models.Profile{
		ID:    assignment.UserID,
		Email: "worker@example.com",
		Role:  models.RoleEmployee,
	}

	return NewService(f, f, archive, quietLogger()), f, assignment
}

func TestSign(t *testing.T) {
	s, f, assignment := newSigningFixture(Archive{})

	signed, err := s.Sign(assignment.ID.String(), assignment.UserID.String(), "data:image/png;base64,abc")
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	if !signed.Signed() {
		t.Error("expected signed state with signature present")
	}
	if signed.SignedAt == nil {
		t.Error("expected signed_at to be stamped")
	}
	_ = f
}

func TestSign_ArchivesRenderedDocument(t *testing.T) {
	renderer := &fakeRenderer{}
	documents := &fakeDocumentStore{}
	s, f, assignment := newSigningFixture(Archive{
		Renderer:       renderer,
		Documents:      documents,
		Bucket:         "contracts",
		CompanyName:    "Staffhub GmbH",
		CompanyAddress: "Hauptstr. 1, Berlin",
	})

	signed, err := s.Sign(assignment.ID.String(), assignment.UserID.String(), "data:image/png;base64,abc")
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	// The update representation has no contract embed; archival must still
	// run because the workflow re-reads the assignment.
	if renderer.calls != 1 {
		t.Fatalf("expected one render call, got %d", renderer.calls)
	}
	if renderer.lastName != "contract" {
		t.Errorf("expected the contract template, got %q", renderer.lastName)
	}
	if documents.bucket != "contracts" || len(documents.uploads) != 1 {
		t.Fatalf("expected one upload to the contract bucket, got %q %v", documents.bucket, documents.uploads)
	}
	if signed.DocumentPath == nil || *signed.DocumentPath != documents.uploads[0] {
		t.Errorf("expected document_path %q on the result, got %v", documents.uploads[0], signed.DocumentPath)
	}
	stored := f.assignments[assignment.ID.String()]
	if stored.DocumentPath == nil || *stored.DocumentPath != documents.uploads[0] {
		t.Errorf("expected document_path persisted, got %v", stored.DocumentPath)
	}
}

func TestSign_ArchiveFailureKeepsSignature(t *testing.T) {
	// No renderer configured: archival fails, the signing must not.
	s, f, assignment := newSigningFixture(Archive{})

	signed, err := s.Sign(assignment.ID.String(), assignment.UserID.String(), "sig")
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	if !signed.Signed() {
		t.Error("expected signed state despite archive failure")
	}
	stored := f.assignments[assignment.ID.String()]
	if stored.DocumentPath != nil {
		t.Errorf("expected no document path, got %v", stored.DocumentPath)
	}
}

func TestSign_EmptySignatureRefused(t *testing.T) {
	s, f, assignment := newSigningFixture(Archive{})

	for _, sig := range []string{"", "   "} {
		_, err := s.Sign(assignment.ID.String(), assignment.UserID.String(), sig)
		if !errors.Is(err, ErrSignatureRequired) {
			t.Errorf("signature %q: expected ErrSignatureRequired, got %v", sig, err)
		}
	}

	// The invariant holds: a pending assignment has no signature.
	stored := f.assignments[assignment.ID.String()]
	if stored.Status != models.ContractPending || stored.SignatureData != nil {
		t.Errorf("pending assignment must have no signature, got %+v", stored)
	}
}

func TestSign_ResignRejected(t *testing.T) {
	s, f, assignment := newSigningFixture(Archive{})
	user := assignment.UserID.String()

	if _, err := s.Sign(assignment.ID.String(), user, "sig-one"); err != nil {
		t.Fatalf("first sign failed: %v", err)
	}
	_, err := s.Sign(assignment.ID.String(), user, "sig-two")
	if !errors.Is(err, ErrAlreadySigned) {
		t.Errorf("expected ErrAlreadySigned, got %v", err)
	}

	// The original signature is untouched.
	stored := f.assignments[assignment.ID.String()]
	if stored.SignatureData == nil || *stored.SignatureData != "sig-one" {
		t.Errorf("original signature must be preserved, got %v", stored.SignatureData)
	}
}

func TestSign_OnlyOwner(t *testing.T) {
	s, _, assignment := newSigningFixture(Archive{})

	_, err := s.Sign(assignment.ID.String(), uuid.New().String(), "sig")
	if !errors.Is(err, ErrNotOwner) {
		t.Errorf("expected ErrNotOwner, got %v", err)
	}
}
