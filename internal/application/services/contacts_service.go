package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"google.golang.org/api/people/v1"

	"github.com/basak2005/Google-workspace-Integration/internal/domain"
	googleinfra "github.com/basak2005/Google-workspace-Integration/internal/infrastructure/google"
)

const personFields = "names,emailAddresses,phoneNumbers,organizations"

// Contact is a reshaped People API person.
type Contact struct {
	ResourceName string `json:"resourceName"`
	Name         string `json:"name"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Organization string `json:"organization,omitempty"`
}

// ContactInput describes a contact to create.
type ContactInput struct {
	Name         string `json:"name"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Organization string `json:"organization,omitempty"`
}

// ContactsService adapts requests to the People API.
type ContactsService struct {
	limiter *googleinfra.RateLimiter
	logger  zerolog.Logger
}

// NewContactsService creates a contacts adapter.
func NewContactsService(logger zerolog.Logger) *ContactsService {
	return &ContactsService{
		limiter: googleinfra.NewRateLimiter(googleinfra.ServiceContacts),
		logger:  logger,
	}
}

// ListContacts lists the user's contacts.
func (s *ContactsService) ListContacts(ctx context.Context, rec *domain.CredentialRecord, maxResults int64) ([]Contact, error) {
	svc, err := s.service(ctx, rec)
	if err != nil {
		return nil, err
	}
	res, err := svc.People.Connections.List("people/me").
		PersonFields(personFields).
		PageSize(maxResults).
		Context(ctx).Do()
	if err != nil {
		return nil, googleinfra.WrapError(err)
	}
	contacts := make([]Contact, 0, len(res.Connections))
	for _, p := range res.Connections {
		contacts = append(contacts, reshapePerson(p))
	}
	return contacts, nil
}

// SearchContacts searches contacts by free-text query.
func (s *ContactsService) SearchContacts(ctx context.Context, rec *domain.CredentialRecord, query string) ([]Contact, error) {
	svc, err := s.service(ctx, rec)
	if err != nil {
		return nil, err
	}
	res, err := svc.People.SearchContacts().
		Query(query).
		ReadMask(personFields).
		Context(ctx).Do()
	if err != nil {
		return nil, googleinfra.WrapError(err)
	}
	contacts := make([]Contact, 0, len(res.Results))
	for _, r := range res.Results {
		if r.Person != nil {
			contacts = append(contacts, reshapePerson(r.Person))
		}
	}
	return contacts, nil
}

// CreateContact creates a new contact.
func (s *ContactsService) CreateContact(ctx context.Context, rec *domain.CredentialRecord, input ContactInput) (*Contact, error) {
	svc, err := s.service(ctx, rec)
	if err != nil {
		return nil, err
	}
	person := &people.Person{
		Names: []*people.Name{{GivenName: input.Name}},
	}
	if input.Email != "" {
		person.EmailAddresses = []*people.EmailAddress{{Value: input.Email}}
	}
	if input.Phone != "" {
		person.PhoneNumbers = []*people.PhoneNumber{{Value: input.Phone}}
	}
	if input.Organization != "" {
		person.Organizations = []*people.Organization{{Name: input.Organization}}
	}
	created, err := svc.People.CreateContact(person).Context(ctx).Do()
	if err != nil {
		return nil, googleinfra.WrapError(err)
	}
	c := reshapePerson(created)
	return &c, nil
}

// DeleteContact removes a contact by resource name.
func (s *ContactsService) DeleteContact(ctx context.Context, rec *domain.CredentialRecord, resourceName string) error {
	svc, err := s.service(ctx, rec)
	if err != nil {
		return err
	}
	if _, err := svc.People.DeleteContact(resourceName).Context(ctx).Do(); err != nil {
		return googleinfra.WrapError(err)
	}
	return nil
}

func (s *ContactsService) service(ctx context.Context, rec *domain.CredentialRecord) (*people.Service, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	svc, err := googleinfra.NewPeopleService(ctx, googleinfra.StaticTokenSource(rec))
	if err != nil {
		return nil, fmt.Errorf("failed to create people service: %w", err)
	}
	return svc, nil
}

func reshapePerson(p *people.Person) Contact {
	c := Contact{ResourceName: p.ResourceName}
	if len(p.Names) > 0 {
		c.Name = p.Names[0].DisplayName
		if c.Name == "" {
			c.Name = p.Names[0].GivenName
		}
	}
	if len(p.EmailAddresses) > 0 {
		c.Email = p.EmailAddresses[0].Value
	}
	if len(p.PhoneNumbers) > 0 {
		c.Phone = p.PhoneNumbers[0].Value
	}
	if len(p.Organizations) > 0 {
		c.Organization = p.Organizations[0].Name
	}
	return c
}
