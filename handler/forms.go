package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/validate/pkg/binder"
	"github.com/dmitrymomot/validate/pkg/htmlform"
	"github.com/dmitrymomot/validate/pkg/logger"
	"github.com/dmitrymomot/validate/pkg/store"
	"github.com/dmitrymomot/validate/pkg/validator"
)

// CreateFormRequest is the JSON body of POST /forms.
type CreateFormRequest struct {
	Fields []validator.FieldDescriptor `json:"fields"`
}

// FormView describes a form instance.
type FormView struct {
	ID     string                      `json:"id"`
	Fields []validator.FieldDescriptor `json:"fields"`
	Rules  map[string][]string         `json:"rules"`
	validator.Summary
}

// FieldView is the result of a single field trigger.
type FieldView struct {
	Field    string   `json:"field"`
	Messages []string `json:"messages"`
	validator.Summary
}

// createForm registers a new instance. The field set comes either from a
// JSON CreateFormRequest or from text/html markup scanned for controls.
func (h *Handler) createForm(r *http.Request) Response {
	fields, err := readFields(r)
	if err != nil {
		return h.fail(r, err)
	}

	form, err := h.newForm(fields)
	if err != nil {
		return h.fail(r, err)
	}

	now := h.now()
	rec := &store.Record{
		ID:        h.newID(),
		Fields:    fields,
		State:     form.State(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.store.Save(r.Context(), rec); err != nil {
		return h.fail(r, err)
	}

	h.log.InfoContext(r.Context(), "form instance created",
		logger.FormID(rec.ID),
		logger.Count(len(fields)),
	)
	return JSON(formView(rec.ID, form), http.StatusCreated)
}

func (h *Handler) getForm(r *http.Request) Response {
	id := chi.URLParam(r, "id")

	rec, err := h.store.Get(r.Context(), id)
	if err != nil {
		return h.fail(r, err)
	}
	form, err := h.load(rec)
	if err != nil {
		return h.fail(r, err)
	}
	return JSON(formView(rec.ID, form), http.StatusOK)
}

func (h *Handler) deleteForm(r *http.Request) Response {
	id := chi.URLParam(r, "id")

	unlock := h.lock(id)
	defer unlock()

	if err := h.store.Delete(r.Context(), id); err != nil {
		return h.fail(r, err)
	}
	h.log.InfoContext(r.Context(), "form instance deleted", logger.FormID(id))
	return NoContent()
}

// validateField is the per-field trigger. The value is read from the
// submitted body under the field's own name; a missing value is "".
func (h *Handler) validateField(r *http.Request) Response {
	id := chi.URLParam(r, "id")
	field, err := url.PathUnescape(chi.URLParam(r, "field"))
	if err != nil {
		return h.fail(r, fmt.Errorf("%w: field name: %v", ErrInvalidRequest, err))
	}

	values, err := h.values(r)
	if err != nil {
		return h.fail(r, err)
	}

	var view FieldView
	err = h.update(r, id, func(form *validator.Form) error {
		messages, err := form.Validate(field, values[field])
		if err != nil {
			return err
		}
		view = FieldView{Field: field, Messages: messages, Summary: form.Summary()}
		return nil
	})
	if err != nil {
		return h.fail(r, err)
	}

	if IsDataStar(r) {
		return signalsResponse{summary: view.Summary}
	}
	return JSON(view, http.StatusOK)
}

// validateAll triggers every assigned field with the submitted values.
func (h *Handler) validateAll(r *http.Request) Response {
	id := chi.URLParam(r, "id")

	values, err := h.values(r)
	if err != nil {
		return h.fail(r, err)
	}

	var summary validator.Summary
	err = h.update(r, id, func(form *validator.Form) error {
		_, err := form.ValidateAll(values)
		summary = form.Summary()
		return err
	})
	if err != nil {
		return h.fail(r, err)
	}

	if IsDataStar(r) {
		return signalsResponse{summary: summary}
	}
	return JSON(summary, http.StatusOK)
}

// update loads the instance, applies fn and saves the resulting state while
// holding the instance's lock. Nothing is saved when fn fails.
func (h *Handler) update(r *http.Request, id string, fn func(*validator.Form) error) error {
	unlock := h.lock(id)
	defer unlock()

	ctx := r.Context()
	rec, err := h.store.Get(ctx, id)
	if err != nil {
		return err
	}
	form, err := h.load(rec)
	if err != nil {
		return err
	}

	if err := fn(form); err != nil {
		return err
	}

	rec.State = form.State()
	rec.UpdatedAt = h.now()
	if err := h.store.Save(ctx, rec); err != nil {
		return err
	}

	invalid, _ := validator.AsFieldErrors(rec.State.Err())
	h.log.DebugContext(ctx, "form instance updated",
		logger.FormID(id),
		slog.Int("error_count", invalid.Count()),
		slog.Any("invalid_fields", invalid.Fields()),
	)
	return nil
}

func (h *Handler) load(rec *store.Record) (*validator.Form, error) {
	form, err := h.newForm(rec.Fields)
	if err != nil {
		return nil, err
	}
	form.Restore(rec.State)
	return form, nil
}

func (h *Handler) values(r *http.Request) (map[string]string, error) {
	if IsDataStar(r) {
		return signalValues(r)
	}
	return binder.Values(r)
}

func formView(id string, form *validator.Form) FormView {
	return FormView{
		ID:      id,
		Fields:  form.Fields(),
		Rules:   form.Assignment().Strings(),
		Summary: form.Summary(),
	}
}

func readFields(r *http.Request) ([]validator.FieldDescriptor, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, nil
	}

	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return nil, nil
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", binder.ErrUnsupportedMediaType, err)
	}

	if mediaType != "text/html" && mediaType != "application/json" {
		return nil, fmt.Errorf("%w: got %s, expected text/html or application/json", binder.ErrUnsupportedMediaType, mediaType)
	}

	data, err := readBody(r.Body, binder.DefaultMaxJSONSize)
	if err != nil {
		return nil, err
	}

	if mediaType == "text/html" {
		res, err := htmlform.Scan(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		return res.Fields, nil
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var req CreateFormRequest
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return nil, fmt.Errorf("%w: %v", binder.ErrFailedToParseJSON, err)
	}
	for i, f := range req.Fields {
		if f.Name == "" {
			return nil, fmt.Errorf("%w: fields[%d] has no name", ErrInvalidRequest, i)
		}
	}
	return req.Fields, nil
}

// readBody reads at most limit bytes and rejects anything longer instead of
// truncating it.
func readBody(body io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: body exceeds %d bytes", ErrRequestTooLarge, limit)
	}
	return data, nil
}

