package metrics

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderCounts(t *testing.T) {
	recorder := NewRecorder(prometheus.NewRegistry())

	recorder.ObserveLookup("remote")
	recorder.ObserveLookup("status")
	recorder.ObserveLookup("status")
	recorder.ObserveSession(SessionStarted)
	recorder.ObserveTick()
	recorder.ObserveTick()

	assert.Equal(t, 1.0, testutil.ToFloat64(recorder.lookups.WithLabelValues("remote")))
	assert.Equal(t, 2.0, testutil.ToFloat64(recorder.lookups.WithLabelValues("status")))
	assert.Equal(t, 1.0, testutil.ToFloat64(recorder.sessions.WithLabelValues(SessionStarted)))
	assert.Equal(t, 2.0, testutil.ToFloat64(recorder.ticks))
}

func TestNilRecorderIsNoop(t *testing.T) {
	var recorder *Recorder
	assert.NotPanics(t, func() {
		recorder.ObserveLookup("remote")
		recorder.ObserveSession(SessionCancelled)
		recorder.ObserveTick()
	})
}

func TestServerExposesRegistry(t *testing.T) {
	registry := NewRegistry()
	recorder := NewRecorder(registry)
	recorder.ObserveTick()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	server, err := Listen("127.0.0.1:0", registry, logrus.NewEntry(logger))
	require.NoError(t, err)
	defer func() {
		_ = server.Shutdown(context.Background())
	}()

	response, err := http.Get("http://" + server.Addr() + "/metrics")
	require.NoError(t, err)
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.Contains(t, string(body), "countdown_ticks_total 1")
}
