package collector

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	json "github.com/goccy/go-json"
	"golang.org/x/oauth2"
	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"bbcd/internal/collector/interfaces"
	"bbcd/internal/providers"
	"bbcd/internal/structures"
)

// AuthenticatorInterface produces the credential option for the mirror
// client. Which concrete mechanism backs it is a deployment concern.
type AuthenticatorInterface interface {
	Authenticate(ctx context.Context) (option.ClientOption, error)
}

// EnvTokenAuthenticator reads a base64-encoded OAuth2 token JSON from an
// environment variable.
type EnvTokenAuthenticator struct {
	envName string
}

func NewAuthenticator(conf *structures.Config) AuthenticatorInterface {
	return &EnvTokenAuthenticator{envName: conf.Mirror.TokenEnv}
}

func (a *EnvTokenAuthenticator) Authenticate(_ context.Context) (option.ClientOption, error) {
	raw := os.Getenv(a.envName)
	if raw == "" {
		return nil, fmt.Errorf("%s not set in environment", a.envName)
	}
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", a.envName, err)
	}
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("parse %s: %w", a.envName, err)
	}
	return option.WithTokenSource(oauth2.StaticTokenSource(&token)), nil
}

// DriveMirror keeps an off-box copy of round log partitions in a Google
// Drive folder. The client is built lazily so a missing token at startup
// only fails pushes, not the daemon.
type DriveMirror struct {
	config *structures.Config
	logger providers.Logger
	auth   AuthenticatorInterface

	mu  sync.Mutex
	svc *drive.Service
}

func NewDriveMirror(conf *structures.Config, logger providers.Logger, auth AuthenticatorInterface) interfaces.MirrorInterface {
	return &DriveMirror{
		config: conf,
		logger: logger,
		auth:   auth,
	}
}

func (m *DriveMirror) service(ctx context.Context) (*drive.Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.svc != nil {
		return m.svc, nil
	}

	cred, err := m.auth.Authenticate(ctx)
	if err != nil {
		return nil, fmt.Errorf("mirror authentication failed: %w", err)
	}
	svc, err := drive.NewService(ctx, cred)
	if err != nil {
		return nil, fmt.Errorf("create drive client: %w", err)
	}
	m.svc = svc
	m.logger.Infof(providers.TypeMirror, "Mirror client authenticated")
	return svc, nil
}

func (m *DriveMirror) Exists(ctx context.Context, name string) (string, bool, error) {
	svc, err := m.service(ctx)
	if err != nil {
		return "", false, err
	}

	query := fmt.Sprintf("name = '%s' and '%s' in parents and trashed = false", name, m.config.Mirror.FolderID)
	list, err := svc.Files.List().Q(query).Fields("files(id)").PageSize(1).Context(ctx).Do()
	if err != nil {
		return "", false, fmt.Errorf("list %s: %w", name, err)
	}
	if len(list.Files) == 0 {
		return "", false, nil
	}
	return list.Files[0].Id, true, nil
}

func (m *DriveMirror) Create(ctx context.Context, name string, content io.Reader) error {
	svc, err := m.service(ctx)
	if err != nil {
		return err
	}

	meta := &drive.File{Name: name, Parents: []string{m.config.Mirror.FolderID}}
	_, err = svc.Files.Create(meta).Media(content, googleapi.ContentType("text/csv")).Context(ctx).Do()
	if gerr, ok := err.(*googleapi.Error); ok && gerr.Code == 404 {
		// Configured folder gone or not shared with this account; fall
		// back to the drive root so the backup still lands somewhere.
		m.logger.Warnf(providers.TypeMirror, "Folder %s rejected, creating %s in drive root", m.config.Mirror.FolderID, name)
		if seeker, ok := content.(io.Seeker); ok {
			if _, serr := seeker.Seek(0, io.SeekStart); serr != nil {
				return fmt.Errorf("create %s: %w", name, serr)
			}
			meta.Parents = nil
			_, err = svc.Files.Create(meta).Media(content, googleapi.ContentType("text/csv")).Context(ctx).Do()
		}
	}
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	return nil
}

func (m *DriveMirror) Update(ctx context.Context, id string, content io.Reader) error {
	svc, err := m.service(ctx)
	if err != nil {
		return err
	}

	_, err = svc.Files.Update(id, &drive.File{}).Media(content, googleapi.ContentType("text/csv")).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("update %s: %w", id, err)
	}
	return nil
}

// Push mirrors one partition file: update in place when a copy already
// exists, create otherwise.
func (m *DriveMirror) Push(ctx context.Context, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open partition: %w", err)
	}
	defer file.Close()

	name := filepath.Base(path)
	id, ok, err := m.Exists(ctx, name)
	if err != nil {
		return err
	}
	if ok {
		if err := m.Update(ctx, id, file); err != nil {
			return err
		}
		m.logger.Infof(providers.TypeMirror, "Updated %s on mirror", name)
		return nil
	}
	if err := m.Create(ctx, name, file); err != nil {
		return err
	}
	m.logger.Infof(providers.TypeMirror, "Created %s on mirror", name)
	return nil
}
