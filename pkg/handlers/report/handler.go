package report

import (
	"bytes"
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/de-tools/afvalwijzer/pkg/models/api"
	"github.com/de-tools/afvalwijzer/pkg/models/domain"
	"github.com/de-tools/afvalwijzer/pkg/models/store"
	"github.com/de-tools/afvalwijzer/pkg/runtime/export"
	"github.com/de-tools/afvalwijzer/pkg/services/convert"
	"github.com/de-tools/afvalwijzer/pkg/services/normalize"
	"github.com/de-tools/afvalwijzer/pkg/store/csvfile"
)

const (
	defaultFormat = "pdf"
	requestSource = "request body"
)

// Renderer is the part of convert.Converter the handler uses.
type Renderer interface {
	Formats() []convert.FormatInfo
	Render(ctx context.Context, records []store.Record, filters domain.Filters, w export.Writer, out io.Writer) error
}

type Handler struct {
	renderer     Renderer
	maxBodyBytes int64
}

func NewHandler(renderer Renderer, maxBodyBytes int64) *Handler {
	return &Handler{
		renderer:     renderer,
		maxBodyBytes: maxBodyBytes,
	}
}

func (h *Handler) ListFormats(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	infos := h.renderer.Formats()
	response := make([]api.Format, 0, len(infos))
	for _, f := range infos {
		response = append(response, api.Format{Ext: f.Ext, Kind: f.Kind, ContentType: f.ContentType})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error().
			Err(err).
			Msg("failed to encode formats")
	}
}

// CreateReport renders the raw CSV export in the request body as a document.
// Query parameters: format (pdf, docx, html or txt), district and residents.
func (h *Handler) CreateReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	query := r.URL.Query()

	format, err := convert.DocumentFormat(cmp.Or(query.Get("format"), defaultFormat))
	if err != nil {
		writeError(ctx, w, http.StatusBadRequest, err)
		return
	}

	filters, err := parseFilters(query.Get("district"), query.Get("residents"))
	if err != nil {
		writeError(ctx, w, http.StatusBadRequest, err)
		return
	}

	body := http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	records, err := csvfile.Decode(ctx, body, requestSource, filters)
	if err != nil {
		writeError(ctx, w, statusOf(err), err)
		return
	}

	// rendered into memory so that a failure never leaves a partial response
	var buf bytes.Buffer
	if err := h.renderer.Render(ctx, records, filters, format.Writer, &buf); err != nil {
		writeError(ctx, w, statusOf(err), err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="afvalwijzer%s"`, format.Ext))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if _, err := buf.WriteTo(w); err != nil {
		logger.Error().
			Err(err).
			Str("format", format.Ext).
			Msg("failed to write report")
		return
	}

	logger.Info().
		Str("format", format.Ext).
		Int("records", len(records)).
		Int("bytes", buf.Len()).
		Msg("report rendered")
}

func parseFilters(district, residents string) (domain.Filters, error) {
	var filters domain.Filters
	if residents != "" {
		b, err := strconv.ParseBool(residents)
		if err != nil {
			return nil, fmt.Errorf("invalid residents parameter %q: %w", residents, err)
		}
		filters = filters.With(store.Columns[store.ColResidential], b)
	}
	if district != "" {
		filters = filters.With(store.Columns[store.ColDistrict], district)
	}
	return filters, nil
}

func statusOf(err error) int {
	var (
		maxBytes    *http.MaxBytesError
		schema      *store.SchemaError
		valueFormat *normalize.ValueFormatError
	)
	switch {
	case errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &schema), errors.As(err, &valueFormat):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeError(ctx context.Context, w http.ResponseWriter, status int, err error) {
	logger := zerolog.Ctx(ctx)
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Msg("request failed")
	} else {
		logger.Warn().Err(err).Int("status", status).Msg("request rejected")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(api.Error{Error: err.Error()}); err != nil {
		logger.Error().
			Err(err).
			Msg("failed to encode error")
	}
}
