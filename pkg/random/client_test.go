package random

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TemiKayas/411HW3/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init("development", "error")
	m.Run()
}

func TestClient_Fraction(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("num"))
		assert.Equal(t, "plain", r.URL.Query().Get("format"))
		w.Write([]byte("0.42\n"))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)

	value, err := client.Fraction(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0.42, value)
}

func TestClient_Fraction_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)

	_, err := client.Fraction(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
}

func TestClient_Fraction_Garbage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not a number</html>"))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)

	_, err := client.Fraction(context.Background())
	require.Error(t, err)
}

func TestClient_Fraction_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte("0.10"))
	}))
	defer server.Close()

	client := NewClient(server.URL, 50*time.Millisecond)

	_, err := client.Fraction(context.Background())
	require.Error(t, err)
}
