package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/afvalwijzer/pkg/models/api"
	"github.com/de-tools/afvalwijzer/pkg/models/domain"
	"github.com/de-tools/afvalwijzer/pkg/models/store"
	"github.com/de-tools/afvalwijzer/pkg/runtime/export"
	"github.com/de-tools/afvalwijzer/pkg/services/convert"
	"github.com/de-tools/afvalwijzer/pkg/store/csvfile"
)

type mockRenderer struct {
	mock.Mock
}

func (m *mockRenderer) Formats() []convert.FormatInfo {
	args := m.Called()
	return args.Get(0).([]convert.FormatInfo)
}

func (m *mockRenderer) Render(ctx context.Context, records []store.Record, filters domain.Filters, w export.Writer, out io.Writer) error {
	args := m.Called(ctx, records, filters, w, out)
	if fn, ok := args.Get(0).(func(io.Writer) error); ok {
		return fn(out)
	}
	return args.Error(0)
}

func TestWebAPI_Endpoints(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))

	renderer := new(mockRenderer)
	renderer.On("Formats").Return([]convert.FormatInfo{{Ext: ".txt", Kind: convert.KindDocument, ContentType: "text/plain; charset=utf-8"}})
	renderer.On("Render", mock.Anything, mock.Anything, domain.Filters{{Field: "stadsdeel", Value: "Centrum"}}, mock.Anything, mock.Anything).
		Return(func(out io.Writer) error {
			_, err := out.Write([]byte("Waste guide in district Centrum\n"))
			return err
		})
	renderer.On("Render", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { panic("renderer crashed") })

	router := ConfigureRouter(Config{
		Dependencies: Dependencies{
			Renderer: renderer,
			Logger:   logger,
		},
	})
	testServer := httptest.NewServer(router)
	defer testServer.Close()

	var body bytes.Buffer
	var rec store.Record
	rec[store.ColStreet] = "Dam"
	rec[store.ColHouseNumber] = "1"
	require.NoError(t, csvfile.Encode(&body, []store.Record{rec}))

	t.Run("ListFormats", func(t *testing.T) {
		resp, err := http.Get(testServer.URL + "/api/v1/formats")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var formats []api.Format
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&formats))
		assert.Equal(t, []api.Format{{Ext: ".txt", Kind: "document", ContentType: "text/plain; charset=utf-8"}}, formats)
	})

	t.Run("CreateReport", func(t *testing.T) {
		resp, err := http.Post(testServer.URL+"/api/v1/reports?format=txt&district=Centrum", "text/csv", bytes.NewReader(body.Bytes()))
		require.NoError(t, err)
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "text/plain; charset=utf-8", resp.Header.Get("Content-Type"))
		assert.Equal(t, "Waste guide in district Centrum\n", string(data))
	})

	t.Run("Recovers from panics", func(t *testing.T) {
		resp, err := http.Post(testServer.URL+"/api/v1/reports?format=txt", "text/csv", bytes.NewReader(body.Bytes()))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})

	t.Run("Unknown route", func(t *testing.T) {
		resp, err := http.Get(testServer.URL + "/api/v1/workspaces")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestWebAPI_Start(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())

	renderer := new(mockRenderer)
	renderer.On("Formats").Return([]convert.FormatInfo{})
	webAPI := NewWebAPI(Config{
		Addr:            net.JoinHostPort("127.0.0.1", strconv.Itoa(port)),
		ShutdownTimeout: time.Second,
		Dependencies: Dependencies{
			Renderer: renderer,
			Logger:   zerolog.New(zerolog.NewTestWriter(t)),
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- webAPI.Start(ctx) }()

	url := "http://" + webAPI.server.Addr + "/api/v1/formats"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
