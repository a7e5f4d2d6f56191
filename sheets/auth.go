package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Scope grants read and write access to spreadsheets.
const Scope = "https://www.googleapis.com/auth/spreadsheets"

// defaultTimeout bounds every API and token request.
const defaultTimeout = 60 * time.Second

// ErrInvalidCredentials is returned for credentials that are not a complete
// service account key.
var ErrInvalidCredentials = errors.New("invalid service account credentials")

// ServiceAccount is the subset of a service account key file used for
// validation and display.
type ServiceAccount struct {
	Type         string `json:"type"`
	ProjectID    string `json:"project_id"`
	PrivateKeyID string `json:"private_key_id"`
	PrivateKey   string `json:"private_key"`
	ClientEmail  string `json:"client_email"`
}

// ParseServiceAccount decodes and validates a service account key. The key
// must have type "service_account" and non-empty project_id, private_key
// and client_email.
func ParseServiceAccount(data []byte) (*ServiceAccount, error) {
	var sa ServiceAccount
	if err := json.Unmarshal(data, &sa); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}
	if sa.Type != "service_account" {
		return nil, fmt.Errorf("%w: type is %q, want service_account", ErrInvalidCredentials, sa.Type)
	}
	if sa.ProjectID == "" || sa.PrivateKey == "" || sa.ClientEmail == "" {
		return nil, fmt.Errorf("%w: project_id, private_key and client_email are required", ErrInvalidCredentials)
	}
	return &sa, nil
}

// ValidateServiceAccount reports whether data is a usable service account key.
func ValidateServiceAccount(data []byte) error {
	_, err := ParseServiceAccount(data)
	return err
}

// authClient builds an authorized HTTP client. Inline credentials win over a
// credentials file; without either, Application Default Credentials are
// used (GOOGLE_APPLICATION_CREDENTIALS, gcloud, metadata server).
func authClient(ctx context.Context, o options) (*http.Client, error) {
	base := &http.Client{Timeout: defaultTimeout}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, base)

	data := o.credentialsJSON
	if len(data) == 0 && o.credentialsFile != "" {
		var err error
		data, err = os.ReadFile(o.credentialsFile)
		if err != nil {
			return nil, fmt.Errorf("reading credentials: %w", err)
		}
	}

	if len(data) == 0 {
		client, err := google.DefaultClient(ctx, Scope)
		if err != nil {
			return nil, fmt.Errorf("no credentials provided and default credentials unavailable: %w", err)
		}
		return client, nil
	}

	if err := ValidateServiceAccount(data); err != nil {
		return nil, err
	}
	conf, err := google.JWTConfigFromJSON(data, Scope)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}
	return conf.Client(ctx), nil
}
