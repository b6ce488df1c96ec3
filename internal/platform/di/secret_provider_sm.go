// internal/platform/di/secret_provider_sm.go
package di

import (
	"context"
	"errors"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	secretmanagerpb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
)

// accessSecret reads one secret version from Secret Manager.
// name is the short secret ID; the latest version is used.
func accessSecret(ctx context.Context, projectID, name string) (string, error) {
	projectID = strings.TrimSpace(projectID)
	name = strings.TrimSpace(name)
	if projectID == "" {
		return "", errors.New("di: projectID is empty")
	}
	if name == "" {
		return "", errors.New("di: secret name is empty")
	}

	sm, err := secretmanager.NewClient(ctx)
	if err != nil {
		return "", err
	}
	defer sm.Close()

	full := "projects/" + projectID + "/secrets/" + name + "/versions/latest"
	resp, err := sm.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: full})
	if err != nil {
		return "", errors.New("di: AccessSecretVersion failed (" + full + "): " + err.Error())
	}
	if resp == nil || resp.Payload == nil {
		return "", errors.New("di: empty secret payload (" + full + ")")
	}

	return strings.TrimSpace(string(resp.Payload.Data)), nil
}
