package secrets

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"birthday-tracker-api/internal/logging"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/sirupsen/logrus"
)

// SecretsManagerAPI is the subset of the Secrets Manager client used here
type SecretsManagerAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// ClientFactory builds a Secrets Manager client for a region
type ClientFactory func(ctx context.Context, region string) (SecretsManagerAPI, error)

// SecretsManagerResolver resolves credentials stored as a JSON secret string
// with username, password and dbname keys.
type SecretsManagerResolver struct {
	newClient ClientFactory
	logger    *logrus.Logger

	mu      sync.Mutex
	clients map[string]SecretsManagerAPI
}

// NewSecretsManagerResolver creates a resolver using the default AWS
// credential chain
func NewSecretsManagerResolver(logger *logrus.Logger) *SecretsManagerResolver {
	return NewSecretsManagerResolverWithFactory(defaultClientFactory, logger)
}

// NewSecretsManagerResolverWithFactory creates a resolver with a custom client factory
func NewSecretsManagerResolverWithFactory(factory ClientFactory, logger *logrus.Logger) *SecretsManagerResolver {
	if logger == nil {
		logger = logrus.New()
	}
	return &SecretsManagerResolver{
		newClient: factory,
		logger:    logger,
		clients:   make(map[string]SecretsManagerAPI),
	}
}

func defaultClientFactory(ctx context.Context, region string) (SecretsManagerAPI, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	return secretsmanager.NewFromConfig(cfg), nil
}

// Resolve fetches and decodes the secret. The secret value itself is never
// cached; only the regional client is reused.
func (r *SecretsManagerResolver) Resolve(ctx context.Context, secretID, region string) (*Credentials, error) {
	fail := func(err error) (*Credentials, error) {
		logging.FromContext(ctx, r.logger).WithError(err).WithField("secret_name", secretID).Error("Error receiving secret")
		return nil, &CredentialResolutionError{SecretID: secretID, Region: region, Err: err}
	}

	if secretID == "" {
		return fail(fmt.Errorf("secret name is empty"))
	}

	client, err := r.client(ctx, region)
	if err != nil {
		return fail(err)
	}

	out, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretID),
	})
	if err != nil {
		return fail(err)
	}

	if out.SecretString == nil {
		return fail(fmt.Errorf("%w: secret has no string value", ErrMalformedSecret))
	}

	var creds Credentials
	if err := json.Unmarshal([]byte(*out.SecretString), &creds); err != nil {
		return fail(fmt.Errorf("%w: %v", ErrMalformedSecret, err))
	}
	if err := creds.Validate(); err != nil {
		return fail(err)
	}

	logging.FromContext(ctx, r.logger).WithField("secret_name", secretID).Info("Successfully retrieved secret")
	return &creds, nil
}

func (r *SecretsManagerResolver) client(ctx context.Context, region string) (SecretsManagerAPI, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.clients[region]; ok {
		return c, nil
	}

	c, err := r.newClient(ctx, region)
	if err != nil {
		return nil, err
	}
	r.clients[region] = c
	return c, nil
}
