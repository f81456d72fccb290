package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"google.golang.org/api/drive/v3"

	"github.com/basak2005/Google-workspace-Integration/internal/domain"
	googleinfra "github.com/basak2005/Google-workspace-Integration/internal/infrastructure/google"
)

// File is a reshaped Drive file.
type File struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	MimeType     string `json:"mimeType"`
	Size         int64  `json:"size,omitempty"`
	ModifiedTime string `json:"modifiedTime,omitempty"`
	WebViewLink  string `json:"webViewLink,omitempty"`
}

// Quota is the Drive storage usage summary.
type Quota struct {
	Limit             int64 `json:"limit"`
	Usage             int64 `json:"usage"`
	UsageInDrive      int64 `json:"usageInDrive"`
	UsageInDriveTrash int64 `json:"usageInDriveTrash"`
}

// DriveService adapts requests to the Google Drive API.
type DriveService struct {
	limiter *googleinfra.RateLimiter
	logger  zerolog.Logger
}

// NewDriveService creates a drive adapter.
func NewDriveService(logger zerolog.Logger) *DriveService {
	return &DriveService{
		limiter: googleinfra.NewRateLimiter(googleinfra.ServiceDrive),
		logger:  logger,
	}
}

// ListFiles lists files, optionally filtered by a Drive query string.
func (s *DriveService) ListFiles(ctx context.Context, rec *domain.CredentialRecord, maxResults int64, query string) ([]File, error) {
	svc, err := s.service(ctx, rec)
	if err != nil {
		return nil, err
	}
	call := svc.Files.List().
		PageSize(maxResults).
		Fields("files(id, name, mimeType, size, modifiedTime, webViewLink)").
		Context(ctx)
	if query != "" {
		call = call.Q(query)
	}
	res, err := call.Do()
	if err != nil {
		return nil, googleinfra.WrapError(err)
	}
	files := make([]File, 0, len(res.Files))
	for _, f := range res.Files {
		files = append(files, reshapeFile(f))
	}
	return files, nil
}

// GetFile returns one file's metadata.
func (s *DriveService) GetFile(ctx context.Context, rec *domain.CredentialRecord, fileID string) (*File, error) {
	svc, err := s.service(ctx, rec)
	if err != nil {
		return nil, err
	}
	f, err := svc.Files.Get(fileID).
		Fields("id, name, mimeType, size, modifiedTime, webViewLink").
		Context(ctx).Do()
	if err != nil {
		return nil, googleinfra.WrapError(err)
	}
	file := reshapeFile(f)
	return &file, nil
}

// DeleteFile permanently removes a file or folder.
func (s *DriveService) DeleteFile(ctx context.Context, rec *domain.CredentialRecord, fileID string) error {
	svc, err := s.service(ctx, rec)
	if err != nil {
		return err
	}
	if err := svc.Files.Delete(fileID).Context(ctx).Do(); err != nil {
		return googleinfra.WrapError(err)
	}
	return nil
}

// CreateFolder creates a folder, optionally under a parent.
func (s *DriveService) CreateFolder(ctx context.Context, rec *domain.CredentialRecord, name, parentID string) (*File, error) {
	svc, err := s.service(ctx, rec)
	if err != nil {
		return nil, err
	}
	folder := &drive.File{
		Name:     name,
		MimeType: "application/vnd.google-apps.folder",
	}
	if parentID != "" {
		folder.Parents = []string{parentID}
	}
	created, err := svc.Files.Create(folder).Fields("id, name, mimeType, webViewLink").Context(ctx).Do()
	if err != nil {
		return nil, googleinfra.WrapError(err)
	}
	file := reshapeFile(created)
	return &file, nil
}

// GetQuota returns the account's storage quota.
func (s *DriveService) GetQuota(ctx context.Context, rec *domain.CredentialRecord) (*Quota, error) {
	svc, err := s.service(ctx, rec)
	if err != nil {
		return nil, err
	}
	about, err := svc.About.Get().Fields("storageQuota").Context(ctx).Do()
	if err != nil {
		return nil, googleinfra.WrapError(err)
	}
	q := &Quota{}
	if about.StorageQuota != nil {
		q.Limit = about.StorageQuota.Limit
		q.Usage = about.StorageQuota.Usage
		q.UsageInDrive = about.StorageQuota.UsageInDrive
		q.UsageInDriveTrash = about.StorageQuota.UsageInDriveTrash
	}
	return q, nil
}

func (s *DriveService) service(ctx context.Context, rec *domain.CredentialRecord) (*drive.Service, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	svc, err := googleinfra.NewDriveService(ctx, googleinfra.StaticTokenSource(rec))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}
	return svc, nil
}

func reshapeFile(f *drive.File) File {
	return File{
		ID:           f.Id,
		Name:         f.Name,
		MimeType:     f.MimeType,
		Size:         f.Size,
		ModifiedTime: f.ModifiedTime,
		WebViewLink:  f.WebViewLink,
	}
}
