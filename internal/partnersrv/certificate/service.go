package certificate

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/productfruits/partnerhub-internal/internal/common/apperrors"
	"github.com/productfruits/partnerhub-internal/internal/common/uuid"
	"github.com/productfruits/partnerhub-internal/internal/partnersrv/partners"
	"github.com/productfruits/partnerhub-internal/pkg/types"
)

var (
	ErrCertificate        apperrors.Error = apperrors.New("certificate error").SetStatusCode(http.StatusInternalServerError)
	ErrInvalidForm        apperrors.Error = ErrCertificate.New("invalid certificate form").SetStatusCode(http.StatusBadRequest)
	ErrUnknownEntity      apperrors.Error = ErrCertificate.New("unknown certificate subject").SetStatusCode(http.StatusNotFound)
	ErrInvalidCertificate apperrors.Error = ErrCertificate.New("invalid certificate request").SetStatusCode(http.StatusBadRequest)
)

// Form is the issue form. Personal certificates carry a split name, company
// certificates carry the company name. The representative signs the
// certificate surface.
type Form struct {
	Type               types.CertificateType `json:"type"`
	EntityID           uuid.UUID             `json:"entity_id"`
	Tier               types.Tier            `json:"tier"`
	FirstName          string                `json:"first_name,omitempty"`
	LastName           string                `json:"last_name,omitempty"`
	CompanyName        string                `json:"company_name,omitempty"`
	RepresentativeName string                `json:"representative_name"`
	IssueDate          time.Time             `json:"issue_date"`
}

// SubjectName returns the name printed on the certificate surface.
func (f Form) SubjectName() string {
	if f.Type == types.CertificatePersonal {
		return strings.TrimSpace(f.FirstName + " " + f.LastName)
	}
	return f.CompanyName
}

// Validate mirrors what the issue flow accepts: a personal certificate needs
// both name parts non-blank after trimming, a company certificate needs the
// company name and a representative.
func (f Form) Validate() apperrors.Error {
	if !f.Type.IsValid() {
		return ErrInvalidForm.Msg("certificate type must be personal or company")
	}
	if !f.Tier.IsValid() {
		return ErrInvalidForm.Msg("partnership tier must be one of core, premium or platinum")
	}
	if f.EntityID == uuid.Nil {
		return ErrInvalidForm.Msg("certificate subject id is required")
	}
	switch f.Type {
	case types.CertificatePersonal:
		if strings.TrimSpace(f.FirstName) == "" || strings.TrimSpace(f.LastName) == "" {
			return ErrInvalidForm.Msg("first and last name are required")
		}
	case types.CertificateCompany:
		if strings.TrimSpace(f.CompanyName) == "" {
			return ErrInvalidForm.Msg("company name is required")
		}
		if strings.TrimSpace(f.RepresentativeName) == "" {
			return ErrInvalidForm.Msg("representative name is required")
		}
	}
	return nil
}

// PrefillForm builds a form from a bridge payload. A personal name splits at
// the first space: the text before it becomes the first name, everything after
// it the last name. A zero issue date defaults to now.
func PrefillForm(req Request) Form {
	form := Form{
		Type:      req.Type,
		EntityID:  req.EntityID,
		Tier:      req.Tier,
		IssueDate: req.IssueDate,
	}
	if form.IssueDate.IsZero() {
		form.IssueDate = time.Now()
	}
	if req.Type == types.CertificatePersonal {
		first, last, _ := strings.Cut(req.Name, " ")
		form.FirstName = first
		form.LastName = last
	} else {
		form.CompanyName = req.Name
	}
	return form
}

// Service issues certificates: it validates the form, stamps the issue
// timestamp through the reconciler and announces the result on the bridge.
type Service struct {
	reconciler *partners.Reconciler
	bridge     *Bridge
}

func NewService(reconciler *partners.Reconciler, bridge *Bridge) *Service {
	return &Service{
		reconciler: reconciler,
		bridge:     bridge,
	}
}

// Request packages a certificate request for an existing entity and broadcasts
// it on the bridge. The returned form is the prefilled edit surface.
func (s *Service) Request(ctx context.Context, certType types.CertificateType, entityID uuid.UUID) (Form, apperrors.Error) {
	var req Request
	switch certType {
	case types.CertificateCompany:
		company, ok := s.reconciler.FindCompany(entityID)
		if !ok {
			return Form{}, ErrUnknownEntity.Msg("company not found")
		}
		req = Request{
			Type:      types.CertificateCompany,
			EntityID:  company.ID,
			Name:      company.Name,
			Tier:      company.Tier,
			IssueDate: time.Now(),
		}
	case types.CertificatePersonal:
		person, company, ok := s.reconciler.FindPerson(entityID)
		if !ok {
			return Form{}, ErrUnknownEntity.Msg("person not found")
		}
		req = Request{
			Type:      types.CertificatePersonal,
			EntityID:  person.ID,
			Name:      person.Name,
			Tier:      company.Tier,
			IssueDate: time.Now(),
		}
	default:
		return Form{}, ErrInvalidCertificate.Msg("certificate type must be personal or company")
	}

	s.bridge.Publish(NewEvent(EventCertificateRequested, req))
	log.Ctx(ctx).Info().
		Str("type", string(req.Type)).
		Str("entity_id", req.EntityID.String()).
		Msg("certificate requested")
	return PrefillForm(req), nil
}

// Issue validates the form, stamps certificate_issued_at on the subject and
// publishes the issued event. Issuing twice with the same timestamp is a
// no-op beyond the repeated event.
func (s *Service) Issue(ctx context.Context, form Form) apperrors.Error {
	if err := form.Validate(); err != nil {
		return err
	}
	if err := s.reconciler.StampCertificate(ctx, form.Type, form.EntityID, form.IssueDate); err != nil {
		return err
	}

	s.bridge.Publish(NewEvent(EventCertificateIssued, Request{
		Type:      form.Type,
		EntityID:  form.EntityID,
		Name:      form.SubjectName(),
		Tier:      form.Tier,
		IssueDate: form.IssueDate,
	}))
	log.Ctx(ctx).Info().
		Str("type", string(form.Type)).
		Str("entity_id", form.EntityID.String()).
		Time("issue_date", form.IssueDate).
		Msg("certificate issued")
	return nil
}
