package auth_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/aussiebroadwan/storefront/pkg/authsdk"
)

/*
 * Common constants and helper functions for auth service end-to-end tests.
 * This includes container setup, service operations, and assertions.
 */

const (
	testImageName = "storefront-auth-test:latest"

	bootstrapToken = "test-bootstrap-token-12345"
	adminEmail     = "admin@storefront.test"
	adminName      = "Store Administrator"
	adminPassword  = "Admin123!"
)

// TestMain builds the Docker image once before all tests and removes it after
// they complete. Without a docker binary the suite is skipped.
func TestMain(m *testing.M) {
	if _, err := exec.LookPath("docker"); err != nil {
		fmt.Fprintln(os.Stdout, "docker not found, skipping auth e2e tests")
		os.Exit(0)
	}

	fmt.Fprintf(os.Stdout, "Building Auth Service Docker image...")
	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Auth Service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	cmd := exec.CommandContext(context.Background(), "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/auth/Dockerfile",
		"../../../")
	cmd.Stdout = os.Stdout
	return cmd.Run()
}

func cleanupDockerImage() {
	cmd := exec.CommandContext(context.Background(), "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // image might already be gone
}

// setupAuthContainer starts the auth service in a container and returns the base URL.
func setupAuthContainer(t *testing.T) (string, func()) {
	t.Helper()
	return startAuthContainer(t, map[string]string{
		"BOOTSTRAP_TOKEN": bootstrapToken,
	})
}

// setupAuthContainerWithoutBootstrap starts the service with the bootstrap
// endpoint disabled.
func setupAuthContainerWithoutBootstrap(t *testing.T) (string, func()) {
	t.Helper()
	return startAuthContainer(t, nil)
}

func startAuthContainer(t *testing.T, extraEnv map[string]string) (string, func()) {
	t.Helper()
	ctx := context.Background()

	env := map[string]string{
		"AUTH_DATABASE_DRIVER": "sqlite",
		"AUTH_DATABASE_FILE":   "/data/auth.db",
		"AUTH_PEPPER_FILE":     "/data/pepper",
		"ENV":                  "test",
		"LOG_LEVEL":            "info",
		"LOG_FORMAT":           "json",
	}
	for k, v := range extraEnv {
		env[k] = v
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        testImageName,
			ExposedPorts: []string{"8080/tcp"},
			Env:          env,
			WaitingFor: wait.ForHTTP("/readyz").
				WithPort("8080/tcp").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return baseURL, cleanup
}

// bootstrapService creates the first administrator and returns its id.
func bootstrapService(t *testing.T, client *authsdk.SDKClient) string {
	t.Helper()

	resp, err := client.Bootstrap(t.Context(), bootstrapToken, authsdk.BootstrapRequest{
		AdminEmail:    adminEmail,
		AdminName:     adminName,
		AdminPassword: adminPassword,
	})
	require.NoError(t, err, "Bootstrap should succeed")
	require.NotEmpty(t, resp.AdminUserID, "Admin user ID should not be empty")

	return resp.AdminUserID
}

// loginAdmin bootstraps the service and returns a session for the administrator.
func loginAdmin(t *testing.T, client *authsdk.SDKClient) *authsdk.Session {
	t.Helper()

	bootstrapService(t, client)
	session, err := client.Login(t.Context(), adminEmail, adminPassword)
	require.NoError(t, err, "Admin login should succeed")
	require.True(t, session.User().IsAdmin)

	return session
}

// registerCustomer creates a customer account and returns its session.
func registerCustomer(t *testing.T, client *authsdk.SDKClient, email string) *authsdk.Session {
	t.Helper()

	session, err := client.Register(t.Context(), authsdk.RegisterRequest{
		Email:    email,
		Password: "Customer123!",
		Name:     "Test Customer",
		Phone:    "+61400000000",
	})
	require.NoError(t, err, "Register should succeed")
	require.NotEmpty(t, session.Token())

	return session
}

// assertUnauthorized checks that an error is a 401 from the server.
func assertUnauthorized(t *testing.T, err error, context string) {
	t.Helper()
	require.Error(t, err, context)
	require.True(t, authsdk.IsUnauthorized(err), "%s - expected 401, got: %v", context, err)
}

// assertForbidden checks that an error is a 403 from the server.
func assertForbidden(t *testing.T, err error, context string) {
	t.Helper()
	require.Error(t, err, context)
	require.True(t, authsdk.IsForbidden(err), "%s - expected 403, got: %v", context, err)
}

// assertHealthy verifies a health check response is OK.
func assertHealthy(t *testing.T, health *authsdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}
