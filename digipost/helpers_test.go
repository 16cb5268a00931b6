package digipost

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vitalvas/digipost/credential"
	"github.com/vitalvas/digipost/httpsig"
	"github.com/vitalvas/digipost/internal/testcert"
)

const testSender SenderID = 123456

var (
	credOnce sync.Once
	testCred *credential.Credential
	credErr  error
)

func testCredential(t *testing.T) *credential.Credential {
	t.Helper()

	credOnce.Do(func() {
		var id testcert.Identity

		id, credErr = testcert.New("digipost-client-test")
		if credErr != nil {
			return
		}

		testCred, credErr = credential.LoadPEM(id.CertPEM, id.KeyPEM, "")
	})
	require.NoError(t, credErr)

	return testCred
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newSignedServer starts a fake Digipost API that rejects requests not
// signed by the test credential for testSender.
func newSignedServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()

	mw, err := httpsig.Middleware(httpsig.MiddlewareConfig{
		Verify: httpsig.VerifyConfig{
			Verifier: testCredential(t),
			UserID:   testSender.String(),
			MaxSkew:  time.Minute,
		},
	})
	require.NoError(t, err)

	server := httptest.NewServer(mw(handler))
	t.Cleanup(server.Close)

	return server
}

func newTestClient(t *testing.T, server *httptest.Server) *Client {
	t.Helper()

	client, err := NewClient(Config{APIURL: server.URL, Logger: quietLogger()}, testSender, testCredential(t))
	require.NoError(t, err)

	return client
}

// recorded is what the fake server saw of one request.
type recorded struct {
	Method      string
	Path        string
	RawQuery    string
	ContentType string
	Body        []byte
}

func recordingServer(t *testing.T, status int, response string) (*httptest.Server, func() []recorded) {
	t.Helper()

	var (
		mu   sync.Mutex
		seen []recorded
	)

	server := newSignedServer(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		mu.Lock()
		seen = append(seen, recorded{
			Method:      r.Method,
			Path:        r.URL.EscapedPath(),
			RawQuery:    r.URL.RawQuery,
			ContentType: r.Header.Get("Content-Type"),
			Body:        body,
		})
		mu.Unlock()

		w.Header().Set("Content-Type", MediaType)
		w.WriteHeader(status)
		_, _ = io.WriteString(w, response)
	})

	return server, func() []recorded {
		mu.Lock()
		defer mu.Unlock()

		return append([]recorded(nil), seen...)
	}
}
